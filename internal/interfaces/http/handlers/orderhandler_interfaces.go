package handlers

import (
	"context"

	"sezzlegate/internal/application/payment/dto"
	"sezzlegate/internal/application/payment/usecases"
)

// Use case interfaces for OrderHandler

type getOrderUseCase interface {
	Execute(ctx context.Context, orderUUID string) (*dto.OrderDTO, error)
}

type releaseOrderUseCase interface {
	Execute(ctx context.Context, cmd usecases.ReleaseOrderCommand) usecases.Result
}

type captureOrderUseCase interface {
	Execute(ctx context.Context, cmd usecases.CaptureOrderCommand) usecases.Result
}

type refundOrderUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefundOrderCommand) usecases.Result
}
