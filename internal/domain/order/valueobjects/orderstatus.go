package valueobjects

// OrderStatus mirrors the shop's order state.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusInProcess OrderStatus = "in_process"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusOpen, OrderStatusInProcess, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}
