package checkout

import (
	"context"
	"fmt"

	"sezzlegate/internal/domain/order"
	"sezzlegate/internal/infrastructure/sezzle"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
	"sezzlegate/internal/shared/utils"
)

type SessionCreator interface {
	Create(ctx context.Context, req sezzle.SessionRequest) (*sezzle.SessionResponse, error)
}

type CreateSessionResult struct {
	OrderUUID   string `json:"order_uuid"`
	CheckoutURL string `json:"checkout_url"`
}

type CreateSessionUseCase struct {
	sessions SessionCreator
	orders   order.Repository
	builder  *SessionBuilder
	logger   logger.Interface
}

func NewCreateSessionUseCase(
	sessions SessionCreator,
	orders order.Repository,
	builder *SessionBuilder,
	logger logger.Interface,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		sessions: sessions,
		orders:   orders,
		builder:  builder,
		logger:   logger,
	}
}

// Execute opens a provider checkout session and stores the local order under
// the provider order uuid.
func (uc *CreateSessionUseCase) Execute(ctx context.Context, params SessionBuilderParameters) (*CreateSessionResult, error) {
	if err := utils.ValidateStruct(params); err != nil {
		return nil, err
	}

	req, err := uc.builder.Build(params)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid basket", err.Error())
	}

	resp, err := uc.sessions.Create(ctx, req)
	if err != nil {
		uc.logger.Errorw("failed to create checkout session",
			"basket_unique_id", params.BasketUniqueID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if resp == nil || resp.Order.UUID == "" {
		return nil, apperrors.NewProviderError("checkout session without order")
	}

	o, err := order.NewOrder(resp.Order.UUID, params.OrderNumberOrDefault(), params.BasketUniqueID, params.BasketData.Currency)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid order", err.Error())
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.logger.Infow("checkout session created",
		"order_uuid", o.TemporaryID(),
		"order_number", o.Number(),
	)

	return &CreateSessionResult{
		OrderUUID:   o.TemporaryID(),
		CheckoutURL: resp.Order.CheckoutURL,
	}, nil
}
