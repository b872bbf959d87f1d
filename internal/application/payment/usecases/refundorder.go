package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/shared/db"
	"sezzlegate/internal/shared/logger"
)

type RefundOrderCommand struct {
	OrderUUID string
	Amount    decimal.Decimal
	Currency  string
}

// RefundOrderUseCase returns captured funds to the customer.
type RefundOrderUseCase struct {
	paymentActionSupport
	resource RefundResource
}

func NewRefundOrderUseCase(
	resource RefundResource,
	orders order.Repository,
	validator AmountValidator,
	orderStatus OrderStatusUpdater,
	paymentStatus PaymentStatusUpdater,
	orderData OrderDataApplier,
	exceptions ExceptionHandler,
	txRunner db.Runner,
	logger logger.Interface,
) *RefundOrderUseCase {
	return &RefundOrderUseCase{
		paymentActionSupport: paymentActionSupport{
			orders:        orders,
			validator:     validator,
			orderStatus:   orderStatus,
			paymentStatus: paymentStatus,
			orderData:     orderData,
			exceptions:    exceptions,
			txRunner:      txRunner,
			logger:        logger,
		},
		resource: resource,
	}
}

func (uc *RefundOrderUseCase) Execute(ctx context.Context, cmd RefundOrderCommand) Result {
	return uc.execute(ctx, actionPlan{
		action:       vo.PaymentActionRefund,
		errContext:   "refund order",
		emptyUUIDMsg: "Error refunding",
		orderUUID:    cmd.OrderUUID,
		amount:       cmd.Amount,
		currency:     cmd.Currency,
		call: func(ctx context.Context, amount vo.Amount) (*ProviderAction, error) {
			return uc.resource.Create(ctx, cmd.OrderUUID, amount)
		},
		book: uc.book,
	})
}

func (uc *RefundOrderUseCase) book(ctx context.Context, o *order.Order, refunded decimal.Decimal) error {
	attrs := o.Attributes()
	total := attrs.RefundedAmount.Add(refunded)

	if vo.FormatToCents(total) == vo.FormatToCents(attrs.CapturedAmount) {
		if err := uc.paymentStatus.UpdatePaymentStatus(ctx, o.TemporaryID(), vo.PaymentStatusReCrediting); err != nil {
			return err
		}
	}

	return uc.orderData.ApplyPaymentAttributes(ctx, o.Number(), vo.AttributeUpdate{
		RefundedAmount: vo.DecimalPtr(total),
	})
}
