package valueobjects

// PaymentAction names the backend operation an amount is validated for.
type PaymentAction string

const (
	PaymentActionCapture PaymentAction = "DoCapture"
	PaymentActionRelease PaymentAction = "DoRelease"
	PaymentActionRefund  PaymentAction = "DoRefund"
)

func (a PaymentAction) IsValid() bool {
	return a == PaymentActionCapture || a == PaymentActionRelease || a == PaymentActionRefund
}

func (a PaymentAction) String() string {
	return string(a)
}
