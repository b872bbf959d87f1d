// Package testutil provides in-memory collaborators for testing the payment
// application layer.
package testutil

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	apperrors "sezzlegate/internal/shared/errors"
)

// MockOrderRepository is an in-memory order.Repository. It stores copies, so
// callers only observe changes they persisted with Update.
type MockOrderRepository struct {
	mu           sync.RWMutex
	orders       map[string]*order.Order
	transactions map[string][]*order.Transaction
	nextID       uint

	// Error injection for testing
	GetError    error
	UpdateError error
	RecordError error
	UpdateCalls int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:       make(map[string]*order.Order),
		transactions: make(map[string][]*order.Transaction),
	}
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.orders[o.TemporaryID()]; exists {
		return apperrors.NewConflictError("order already exists", o.TemporaryID())
	}
	m.nextID++
	o.SetID(m.nextID)
	o.MarkPersisted()
	stored := *o
	m.orders[o.TemporaryID()] = &stored
	return nil
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	current, exists := m.orders[o.TemporaryID()]
	if !exists {
		return apperrors.NewNotFoundError("order not found", o.TemporaryID())
	}
	if current.Version() != o.PersistedVersion() {
		return apperrors.NewConflictError("order was modified concurrently", o.TemporaryID())
	}
	o.MarkPersisted()
	stored := *o
	m.orders[o.TemporaryID()] = &stored
	return nil
}

func (m *MockOrderRepository) GetByTemporaryID(ctx context.Context, temporaryID string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	o, exists := m.orders[temporaryID]
	if !exists {
		return nil, apperrors.NewNotFoundError("order not found", temporaryID)
	}
	c := *o
	return &c, nil
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, o := range m.orders {
		if o.Number() == number {
			c := *o
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("order not found", number)
}

func (m *MockOrderRepository) RecordTransaction(ctx context.Context, tx *order.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordError != nil {
		return m.RecordError
	}
	m.transactions[tx.OrderTemporaryID()] = append(m.transactions[tx.OrderTemporaryID()], tx)
	return nil
}

func (m *MockOrderRepository) ListTransactions(ctx context.Context, temporaryID string) ([]*order.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*order.Transaction(nil), m.transactions[temporaryID]...), nil
}

// Stored returns the persisted copy of an order, or nil.
func (m *MockOrderRepository) Stored(temporaryID string) *order.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, exists := m.orders[temporaryID]
	if !exists {
		return nil
	}
	c := *o
	return &c
}

// SeedAuthorizedOrder stores an order with authAmount and reserved payment status.
func SeedAuthorizedOrder(repo *MockOrderRepository, temporaryID, number, authAmount string) *order.Order {
	o, err := order.NewOrder(temporaryID, number, "ref-"+number, "USD")
	if err != nil {
		panic(err)
	}
	if err := o.Authorize(decimal.RequireFromString(authAmount)); err != nil {
		panic(err)
	}
	if err := repo.Create(context.Background(), o); err != nil {
		panic(err)
	}
	return o
}

// SeedCapturedOrder stores an order whose authorization was fully captured.
func SeedCapturedOrder(repo *MockOrderRepository, temporaryID, number, captured string) *order.Order {
	o := SeedAuthorizedOrder(repo, temporaryID, number, captured)
	amount := decimal.RequireFromString(captured)
	if err := o.ApplyPaymentAttributes(vo.AttributeUpdate{
		AuthAmount:     vo.DecimalPtr(decimal.Zero),
		CapturedAmount: vo.DecimalPtr(amount),
	}); err != nil {
		panic(err)
	}
	if err := o.SetPaymentStatus(vo.PaymentStatusCompletelyPaid); err != nil {
		panic(err)
	}
	if err := repo.Update(context.Background(), o); err != nil {
		panic(err)
	}
	repo.UpdateCalls = 0
	return o
}
