package valueobjects

// PaymentStatus mirrors the shop's payment state of an order.
type PaymentStatus string

const (
	PaymentStatusOpen            PaymentStatus = "open"
	PaymentStatusReserved        PaymentStatus = "reserved"
	PaymentStatusPartiallyPaid   PaymentStatus = "partially_paid"
	PaymentStatusCompletelyPaid  PaymentStatus = "completely_paid"
	PaymentStatusCancelled       PaymentStatus = "cancelled"
	PaymentStatusReCrediting     PaymentStatus = "re_crediting"
	PaymentStatusReviewNecessary PaymentStatus = "review_necessary"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusOpen, PaymentStatusReserved, PaymentStatusPartiallyPaid,
		PaymentStatusCompletelyPaid, PaymentStatusCancelled, PaymentStatusReCrediting,
		PaymentStatusReviewNecessary:
		return true
	default:
		return false
	}
}

// AwaitsAuthorization is true before the provider's authorization was booked.
func (s PaymentStatus) AwaitsAuthorization() bool {
	return s == PaymentStatusOpen || s == PaymentStatusReviewNecessary
}

func (s PaymentStatus) String() string {
	return string(s)
}
