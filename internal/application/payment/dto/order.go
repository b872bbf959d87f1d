package dto

import (
	"time"

	"sezzlegate/internal/domain/order"
)

type OrderDTO struct {
	UUID           string           `json:"uuid"`
	Number         string           `json:"number"`
	ReferenceID    string           `json:"reference_id,omitempty"`
	Currency       string           `json:"currency"`
	OrderStatus    string           `json:"order_status"`
	PaymentStatus  string           `json:"payment_status"`
	AuthAmount     string           `json:"auth_amount"`
	CapturedAmount string           `json:"captured_amount"`
	ReleasedAmount string           `json:"released_amount"`
	RefundedAmount string           `json:"refunded_amount"`
	Transactions   []TransactionDTO `json:"transactions"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type TransactionDTO struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	ProviderUUID string    `json:"provider_uuid"`
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToOrderDTO(o *order.Order, txs []*order.Transaction) *OrderDTO {
	attrs := o.Attributes()
	result := &OrderDTO{
		UUID:           o.TemporaryID(),
		Number:         o.Number(),
		ReferenceID:    o.ReferenceID(),
		Currency:       o.Currency(),
		OrderStatus:    o.OrderStatus().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		AuthAmount:     attrs.AuthAmount.StringFixed(2),
		CapturedAmount: attrs.CapturedAmount.StringFixed(2),
		ReleasedAmount: attrs.ReleasedAmount.StringFixed(2),
		RefundedAmount: attrs.RefundedAmount.StringFixed(2),
		Transactions:   make([]TransactionDTO, 0, len(txs)),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
	for _, tx := range txs {
		result.Transactions = append(result.Transactions, TransactionDTO{
			ID:           tx.ID(),
			Action:       tx.Action().String(),
			ProviderUUID: tx.ProviderUUID(),
			Amount:       tx.Amount().InCurrencyUnits().StringFixed(2),
			Currency:     tx.Amount().Currency(),
			CreatedAt:    tx.CreatedAt(),
		})
	}
	return result
}
