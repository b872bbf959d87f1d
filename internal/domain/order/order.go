package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "sezzlegate/internal/domain/order/valueobjects"
)

// ErrAlreadyAuthorized is returned when an authorization is booked on an order
// that already holds one or has moved past it.
var ErrAlreadyAuthorized = errors.New("order is already authorized")

// Order is the shop order as far as the payment integration is concerned. It is
// addressed by the provider order uuid, stored as the order's temporary id.
type Order struct {
	id            uint
	temporaryID   string
	number        string
	referenceID   string
	currency      string
	orderStatus   vo.OrderStatus
	paymentStatus vo.PaymentStatus
	attributes    vo.PaymentAttributes
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	// version as last loaded or saved; Update only writes over this version
	persistedVersion int
}

func NewOrder(temporaryID, number, referenceID, currency string) (*Order, error) {
	if temporaryID == "" {
		return nil, fmt.Errorf("temporary id is required")
	}
	if number == "" {
		return nil, fmt.Errorf("order number is required")
	}
	code, err := vo.NormalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		temporaryID:   temporaryID,
		number:        number,
		referenceID:   referenceID,
		currency:      code,
		orderStatus:   vo.OrderStatusOpen,
		paymentStatus: vo.PaymentStatusOpen,
		attributes: vo.PaymentAttributes{
			AuthAmount:     decimal.Zero,
			CapturedAmount: decimal.Zero,
			ReleasedAmount: decimal.Zero,
			RefundedAmount: decimal.Zero,
		},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructOrder rebuilds an order from persistence without validation.
func ReconstructOrder(
	id uint,
	temporaryID, number, referenceID, currency string,
	orderStatus vo.OrderStatus,
	paymentStatus vo.PaymentStatus,
	attributes vo.PaymentAttributes,
	version int,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		temporaryID:   temporaryID,
		number:        number,
		referenceID:   referenceID,
		currency:      currency,
		orderStatus:   orderStatus,
		paymentStatus: paymentStatus,
		attributes:    attributes,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,

		persistedVersion: version,
	}
}

func (o *Order) ID() uint {
	return o.id
}

func (o *Order) TemporaryID() string {
	return o.temporaryID
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) ReferenceID() string {
	return o.referenceID
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) OrderStatus() vo.OrderStatus {
	return o.orderStatus
}

func (o *Order) PaymentStatus() vo.PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Attributes() vo.PaymentAttributes {
	return o.attributes
}

func (o *Order) Version() int {
	return o.version
}

// PersistedVersion is the version the stored row is expected to carry.
func (o *Order) PersistedVersion() int {
	return o.persistedVersion
}

// HasChanges reports whether the order was modified since it was loaded or saved.
func (o *Order) HasChanges() bool {
	return o.version != o.persistedVersion
}

func (o *Order) MarkPersisted() {
	o.persistedVersion = o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) SetID(id uint) {
	o.id = id
}

func (o *Order) SetOrderStatus(status vo.OrderStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid order status: %s", status)
	}
	if o.orderStatus == status {
		return nil
	}
	o.orderStatus = status
	o.touch()
	return nil
}

func (o *Order) SetPaymentStatus(status vo.PaymentStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid payment status: %s", status)
	}
	if o.paymentStatus == status {
		return nil
	}
	o.paymentStatus = status
	o.touch()
	return nil
}

// ApplyPaymentAttributes merges the update into the cached amounts.
func (o *Order) ApplyPaymentAttributes(update vo.AttributeUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	next, err := update.ApplyTo(o.attributes)
	if err != nil {
		return err
	}
	o.attributes = next
	o.touch()
	return nil
}

// Authorize records the amount the provider reserved for this order. It is only
// accepted while the payment still awaits its authorization.
func (o *Order) Authorize(amount decimal.Decimal) error {
	if !o.paymentStatus.AwaitsAuthorization() {
		return fmt.Errorf("%w: payment status %s", ErrAlreadyAuthorized, o.paymentStatus)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("authorized amount must be positive")
	}
	o.attributes.AuthAmount = amount
	o.paymentStatus = vo.PaymentStatusReserved
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
	o.version++
}
