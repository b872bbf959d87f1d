package services

import (
	"context"
	"fmt"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	apperrors "sezzlegate/internal/shared/errors"
)

// OrderDataService writes the cached payment attributes of an order.
type OrderDataService struct {
	repo order.Repository
}

func NewOrderDataService(repo order.Repository) *OrderDataService {
	return &OrderDataService{repo: repo}
}

// ApplyPaymentAttributes merges update into the attributes of the order with
// the given shop order number.
func (s *OrderDataService) ApplyPaymentAttributes(ctx context.Context, orderNumber string, update vo.AttributeUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return err
	}

	if err := o.ApplyPaymentAttributes(update); err != nil {
		return apperrors.NewValidationError("invalid payment attributes", err.Error())
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return fmt.Errorf("failed to save payment attributes: %w", err)
	}
	return nil
}
