package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "sezzlegate/internal/domain/order/valueobjects"
)

// Transaction records one provider action that succeeded remotely.
type Transaction struct {
	id               string
	orderTemporaryID string
	action           vo.PaymentAction
	providerUUID     string
	amount           vo.Amount
	rawResponse      []byte
	createdAt        time.Time
}

func NewTransaction(orderTemporaryID string, action vo.PaymentAction, providerUUID string, amount vo.Amount, rawResponse []byte) (*Transaction, error) {
	if orderTemporaryID == "" {
		return nil, fmt.Errorf("order temporary id is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid payment action: %s", action)
	}
	if providerUUID == "" {
		return nil, fmt.Errorf("provider uuid is required")
	}
	return &Transaction{
		id:               uuid.NewString(),
		orderTemporaryID: orderTemporaryID,
		action:           action,
		providerUUID:     providerUUID,
		amount:           amount,
		rawResponse:      rawResponse,
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructTransaction(id, orderTemporaryID string, action vo.PaymentAction, providerUUID string, amount vo.Amount, rawResponse []byte, createdAt time.Time) *Transaction {
	return &Transaction{
		id:               id,
		orderTemporaryID: orderTemporaryID,
		action:           action,
		providerUUID:     providerUUID,
		amount:           amount,
		rawResponse:      rawResponse,
		createdAt:        createdAt,
	}
}

func (t *Transaction) ID() string {
	return t.id
}

func (t *Transaction) OrderTemporaryID() string {
	return t.orderTemporaryID
}

func (t *Transaction) Action() vo.PaymentAction {
	return t.action
}

func (t *Transaction) ProviderUUID() string {
	return t.providerUUID
}

func (t *Transaction) Amount() vo.Amount {
	return t.amount
}

func (t *Transaction) RawResponse() []byte {
	return t.rawResponse
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}
