package valueobjects

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentAttributes holds the cumulative amounts cached on an order, in
// currency units.
type PaymentAttributes struct {
	AuthAmount     decimal.Decimal
	CapturedAmount decimal.Decimal
	ReleasedAmount decimal.Decimal
	RefundedAmount decimal.Decimal
}

// Refundable is what has been captured and not yet refunded.
func (p PaymentAttributes) Refundable() decimal.Decimal {
	return p.CapturedAmount.Sub(p.RefundedAmount)
}

// AttributeUpdate carries only the attributes a payment action changes.
type AttributeUpdate struct {
	AuthAmount     *decimal.Decimal
	CapturedAmount *decimal.Decimal
	ReleasedAmount *decimal.Decimal
	RefundedAmount *decimal.Decimal
}

func (u AttributeUpdate) IsEmpty() bool {
	return u.AuthAmount == nil && u.CapturedAmount == nil && u.ReleasedAmount == nil && u.RefundedAmount == nil
}

// ApplyTo returns attrs with the update merged in. No resulting amount may be negative.
func (u AttributeUpdate) ApplyTo(attrs PaymentAttributes) (PaymentAttributes, error) {
	next := attrs
	fields := []struct {
		name string
		src  *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"authAmount", u.AuthAmount, &next.AuthAmount},
		{"capturedAmount", u.CapturedAmount, &next.CapturedAmount},
		{"releasedAmount", u.ReleasedAmount, &next.ReleasedAmount},
		{"refundedAmount", u.RefundedAmount, &next.RefundedAmount},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if f.src.IsNegative() {
			return attrs, fmt.Errorf("%s cannot be negative: %s", f.name, f.src.StringFixed(2))
		}
		*f.dst = *f.src
	}
	return next, nil
}

// DecimalPtr is a convenience for building updates.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
