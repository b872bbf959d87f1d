package usecases

import (
	"context"

	"sezzlegate/internal/application/payment/dto"
	"sezzlegate/internal/domain/order"
	"sezzlegate/internal/shared/logger"
)

type GetOrderUseCase struct {
	orders order.Repository
	logger logger.Interface
}

func NewGetOrderUseCase(orders order.Repository, logger logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders, logger: logger}
}

// Execute returns the order addressed by the provider order uuid together with
// its booked provider transactions.
func (uc *GetOrderUseCase) Execute(ctx context.Context, orderUUID string) (*dto.OrderDTO, error) {
	o, err := uc.orders.GetByTemporaryID(ctx, orderUUID)
	if err != nil {
		return nil, err
	}

	txs, err := uc.orders.ListTransactions(ctx, orderUUID)
	if err != nil {
		uc.logger.Errorw("failed to list order transactions", "order_uuid", orderUUID, "error", err)
		return nil, err
	}

	return dto.ToOrderDTO(o, txs), nil
}
