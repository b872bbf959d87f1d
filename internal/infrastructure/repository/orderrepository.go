package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sezzlegate/internal/domain/order"
	"sezzlegate/internal/infrastructure/persistence/mappers"
	"sezzlegate/internal/infrastructure/persistence/models"
	"sezzlegate/internal/shared/db"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
)

type OrderRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

var _ order.Repository = (*OrderRepository)(nil)

func NewOrderRepository(db *gorm.DB, log logger.Interface) *OrderRepository {
	return &OrderRepository{db: db, logger: log}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	model := mappers.OrderToModel(o)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("order already exists", o.TemporaryID())
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.SetID(model.ID)
	o.MarkPersisted()
	return nil
}

// Update writes the order only if the stored row still carries the version it
// was loaded with. A lost race is reported as a conflict.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	if !o.HasChanges() {
		return nil
	}
	model := mappers.OrderToModel(o)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", model.ID, o.PersistedVersion()).
		Updates(map[string]interface{}{
			"order_status":    model.OrderStatus,
			"payment_status":  model.PaymentStatus,
			"auth_amount":     model.AuthAmount,
			"captured_amount": model.CapturedAmount,
			"released_amount": model.ReleasedAmount,
			"refunded_amount": model.RefundedAmount,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("order was modified concurrently", o.TemporaryID())
	}

	o.MarkPersisted()
	return nil
}

func (r *OrderRepository) GetByTemporaryID(ctx context.Context, temporaryID string) (*order.Order, error) {
	return r.getOne(ctx, "temporary_id = ?", temporaryID)
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.getOne(ctx, "number = ?", number)
}

func (r *OrderRepository) getOne(ctx context.Context, query string, arg string) (*order.Order, error) {
	var model models.OrderModel

	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUpdate(ctx)).
		Where(query, arg).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order not found", arg)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return mappers.OrderToDomain(&model)
}

func (r *OrderRepository) RecordTransaction(ctx context.Context, tx *order.Transaction) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.TransactionToModel(tx)).Error; err != nil {
		return fmt.Errorf("failed to record %s transaction: %w", tx.Action(), err)
	}
	return nil
}

func (r *OrderRepository) ListTransactions(ctx context.Context, temporaryID string) ([]*order.Transaction, error) {
	var rows []models.OrderTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("order_temporary_id = ?", temporaryID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	result := make([]*order.Transaction, 0, len(rows))
	for i := range rows {
		tx, err := mappers.TransactionToDomain(&rows[i])
		if err != nil {
			r.logger.Warnw("skipping unreadable transaction", "id", rows[i].ID, "error", err)
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}
