package order

import "context"

// Repository persists orders and their provider transactions. Lookups return a
// not_found AppError when nothing matches.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	GetByTemporaryID(ctx context.Context, temporaryID string) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	RecordTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, temporaryID string) ([]*Transaction, error)
}
