package services

import (
	"context"
	"fmt"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
)

type PaymentStatusService struct {
	repo   order.Repository
	logger logger.Interface
}

func NewPaymentStatusService(repo order.Repository, log logger.Interface) *PaymentStatusService {
	return &PaymentStatusService{repo: repo, logger: log}
}

// UpdatePaymentStatus behaves like OrderStatusService.UpdateOrderStatus for the
// payment status.
func (s *PaymentStatusService) UpdatePaymentStatus(ctx context.Context, orderUUID string, status vo.PaymentStatus) error {
	o, err := s.repo.GetByTemporaryID(ctx, orderUUID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			s.logger.Warnw("payment status update skipped, order not found",
				"order_uuid", orderUUID,
				"status", status,
			)
			return nil
		}
		return err
	}

	before := o.Version()
	if err := o.SetPaymentStatus(status); err != nil {
		return fmt.Errorf("failed to set payment status: %w", err)
	}
	if o.Version() == before {
		return nil
	}
	return s.repo.Update(ctx, o)
}
