package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/shared/db"
	"sezzlegate/internal/shared/logger"
)

type CaptureOrderCommand struct {
	OrderUUID string
	Amount    decimal.Decimal
	Currency  string
}

// CaptureOrderUseCase settles part or all of an authorization.
type CaptureOrderUseCase struct {
	paymentActionSupport
	resource CaptureResource
}

func NewCaptureOrderUseCase(
	resource CaptureResource,
	orders order.Repository,
	validator AmountValidator,
	orderStatus OrderStatusUpdater,
	paymentStatus PaymentStatusUpdater,
	orderData OrderDataApplier,
	exceptions ExceptionHandler,
	txRunner db.Runner,
	logger logger.Interface,
) *CaptureOrderUseCase {
	return &CaptureOrderUseCase{
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

func (uc *CaptureOrderUseCase) Execute(ctx context.Context, cmd CaptureOrderCommand) Result {
	return uc.execute(ctx, actionPlan{
		action:       vo.PaymentActionCapture,
		errContext:   "capture order",
		emptyUUIDMsg: "Error capturing",
		orderUUID:    cmd.OrderUUID,
		amount:       cmd.Amount,
		currency:     cmd.Currency,
		call: func(ctx context.Context, amount vo.Amount) (*ProviderAction, error) {
			partial, err := uc.isPartial(ctx, cmd.OrderUUID, amount)
			if err != nil {
				return nil, err
			}
			return uc.resource.Create(ctx, cmd.OrderUUID, amount, partial)
		},
		book: uc.book,
	})
}

// isPartial reports whether amount leaves part of the authorization open.
func (uc *CaptureOrderUseCase) isPartial(ctx context.Context, orderUUID string, amount vo.Amount) (bool, error) {
	o, err := uc.orders.GetByTemporaryID(ctx, orderUUID)
	if err != nil {
		return false, err
	}
	return amount.AmountInCents() < vo.FormatToCents(o.Attributes().AuthAmount), nil
}

func (uc *CaptureOrderUseCase) book(ctx context.Context, o *order.Order, captured decimal.Decimal) error {
	attrs := o.Attributes()

	status := vo.PaymentStatusPartiallyPaid
	if vo.FormatToCents(attrs.AuthAmount) == vo.FormatToCents(captured) {
		status = vo.PaymentStatusCompletelyPaid
	}
	if err := uc.paymentStatus.UpdatePaymentStatus(ctx, o.TemporaryID(), status); err != nil {
		return err
	}

	return uc.orderData.ApplyPaymentAttributes(ctx, o.Number(), vo.AttributeUpdate{
		AuthAmount:     vo.DecimalPtr(attrs.AuthAmount.Sub(captured)),
		CapturedAmount: vo.DecimalPtr(attrs.CapturedAmount.Add(captured)),
	})
}
