package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/shared/db"
	"sezzlegate/internal/shared/logger"
)

type ReleaseOrderCommand struct {
	OrderUUID string
	Amount    decimal.Decimal
	Currency  string
}

// ReleaseOrderUseCase gives back part or all of an authorization.
type ReleaseOrderUseCase struct {
	paymentActionSupport
	resource ReleaseResource
}

func NewReleaseOrderUseCase(
	resource ReleaseResource,
	orders order.Repository,
	validator AmountValidator,
	orderStatus OrderStatusUpdater,
	paymentStatus PaymentStatusUpdater,
	orderData OrderDataApplier,
	exceptions ExceptionHandler,
	txRunner db.Runner,
	logger logger.Interface,
) *ReleaseOrderUseCase {
	return &ReleaseOrderUseCase{
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

func (uc *ReleaseOrderUseCase) Execute(ctx context.Context, cmd ReleaseOrderCommand) Result {
	return uc.execute(ctx, actionPlan{
		action: vo.PaymentActionRelease,
		// Same context as capture.
		errContext:   "capture order",
		emptyUUIDMsg: "Error releasing",
		orderUUID:    cmd.OrderUUID,
		amount:       cmd.Amount,
		currency:     cmd.Currency,
		call: func(ctx context.Context, amount vo.Amount) (*ProviderAction, error) {
			return uc.resource.Create(ctx, cmd.OrderUUID, amount)
		},
		book: uc.book,
	})
}

func (uc *ReleaseOrderUseCase) book(ctx context.Context, o *order.Order, released decimal.Decimal) error {
	attrs := o.Attributes()

	if vo.FormatToCents(attrs.AuthAmount) == vo.FormatToCents(released) {
		if err := uc.paymentStatus.UpdatePaymentStatus(ctx, o.TemporaryID(), vo.PaymentStatusCancelled); err != nil {
			return err
		}
	}

	return uc.orderData.ApplyPaymentAttributes(ctx, o.Number(), vo.AttributeUpdate{
		AuthAmount:     vo.DecimalPtr(attrs.AuthAmount.Sub(released)),
		ReleasedAmount: vo.DecimalPtr(attrs.ReleasedAmount.Add(released)),
	})
}
