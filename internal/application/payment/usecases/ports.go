package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/application/payment/services"
	vo "sezzlegate/internal/domain/order/valueobjects"
)

// ProviderAction is the provider's answer to a capture, release or refund.
// An empty UUID means the provider did not accept the action.
type ProviderAction struct {
	UUID string
	Raw  []byte
}

type ReleaseResource interface {
	Create(ctx context.Context, orderUUID string, amount vo.Amount) (*ProviderAction, error)
}

type CaptureResource interface {
	Create(ctx context.Context, orderUUID string, amount vo.Amount, partial bool) (*ProviderAction, error)
}

type RefundResource interface {
	Create(ctx context.Context, orderUUID string, amount vo.Amount) (*ProviderAction, error)
}

type AmountValidator interface {
	IsAmountValid(ctx context.Context, orderUUID string, amount decimal.Decimal, action vo.PaymentAction) bool
}

type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderUUID string, status vo.OrderStatus) error
}

type PaymentStatusUpdater interface {
	UpdatePaymentStatus(ctx context.Context, orderUUID string, status vo.PaymentStatus) error
}

type OrderDataApplier interface {
	ApplyPaymentAttributes(ctx context.Context, orderNumber string, update vo.AttributeUpdate) error
}

type ExceptionHandler interface {
	Handle(err error, context string) *services.HandledError
}

// ActionLocker serialises payment actions per order. The release func must be
// safe to call when nothing was acquired.
type ActionLocker interface {
	TryAcquire(ctx context.Context, orderUUID string) (release func(), acquired bool, err error)
}

type ActionRecorder interface {
	RecordPaymentAction(action string, success bool)
}

// Divergence describes a provider action whose local bookkeeping failed.
type Divergence struct {
	Action       string
	OrderUUID    string
	ProviderUUID string
	Amount       string
	Error        string
	OccurredAt   time.Time
}

type DivergenceNotifier interface {
	NotifyDivergence(ctx context.Context, d Divergence) error
}
