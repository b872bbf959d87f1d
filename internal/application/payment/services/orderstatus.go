package services

import (
	"context"
	"fmt"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
)

// OrderStatusService moves an order through its shop-side lifecycle.
type OrderStatusService struct {
	repo   order.Repository
	logger logger.Interface
}

func NewOrderStatusService(repo order.Repository, log logger.Interface) *OrderStatusService {
	return &OrderStatusService{repo: repo, logger: log}
}

// UpdateOrderStatus sets the status of the order addressed by orderUUID. An
// unknown order is logged and ignored; the caller's own lookup reports it.
func (s *OrderStatusService) UpdateOrderStatus(ctx context.Context, orderUUID string, status vo.OrderStatus) error {
	o, err := s.repo.GetByTemporaryID(ctx, orderUUID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			s.logger.Warnw("order status update skipped, order not found",
				"order_uuid", orderUUID,
				"status", status,
			)
			return nil
		}
		return err
	}

	before := o.Version()
	if err := o.SetOrderStatus(status); err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}
	if o.Version() == before {
		return nil
	}
	return s.repo.Update(ctx, o)
}
