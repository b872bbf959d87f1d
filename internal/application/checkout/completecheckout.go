package checkout

import (
	"context"
	"fmt"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/infrastructure/sezzle"
	"sezzlegate/internal/shared/db"
	"sezzlegate/internal/shared/logger"
)

type OrderFetcher interface {
	Get(ctx context.Context, orderUUID string) (*sezzle.OrderResponse, error)
}

type CompleteCheckoutResult struct {
	OrderUUID     string `json:"order_uuid"`
	PaymentStatus string `json:"payment_status"`
	AuthAmount    string `json:"auth_amount"`
}

// CompleteCheckoutUseCase runs when the customer returns from the provider.
type CompleteCheckoutUseCase struct {
	providerOrders OrderFetcher
	orders         order.Repository
	txRunner       db.Runner
	logger         logger.Interface
}

func NewCompleteCheckoutUseCase(
	providerOrders OrderFetcher,
	orders order.Repository,
	txRunner db.Runner,
	logger logger.Interface,
) *CompleteCheckoutUseCase {
	return &CompleteCheckoutUseCase{
		providerOrders: providerOrders,
		orders:         orders,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// Execute books the provider's authorization on the local order. Without an
// approved authorization the order is flagged for review. Once booked, later
// calls return the order unchanged.
func (uc *CompleteCheckoutUseCase) Execute(ctx context.Context, orderUUID string) (*CompleteCheckoutResult, error) {
	remote, err := uc.providerOrders.Get(ctx, orderUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider order: %w", err)
	}

	var result *CompleteCheckoutResult
	err = uc.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := uc.orders.GetByTemporaryID(ctx, orderUUID)
		if err != nil {
			return err
		}

		if !o.PaymentStatus().AwaitsAuthorization() {
			uc.logger.Infow("checkout already completed, keeping booked amounts",
				"order_uuid", orderUUID,
				"payment_status", o.PaymentStatus(),
			)
			result = completeResult(o)
			return nil
		}

		auth := remote.Authorization
		if auth != nil && auth.Approved {
			amount := vo.FormatToCurrency(auth.AuthorizationAmount.AmountInCents)
			if err := o.Authorize(amount); err != nil {
				return err
			}
		} else {
			uc.logger.Warnw("checkout completed without approved authorization", "order_uuid", orderUUID)
			if err := o.SetPaymentStatus(vo.PaymentStatusReviewNecessary); err != nil {
				return err
			}
		}

		if err := uc.orders.Update(ctx, o); err != nil {
			return err
		}

		result = completeResult(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func completeResult(o *order.Order) *CompleteCheckoutResult {
	return &CompleteCheckoutResult{
		OrderUUID:     o.TemporaryID(),
		PaymentStatus: o.PaymentStatus().String(),
		AuthAmount:    o.Attributes().AuthAmount.StringFixed(2),
	}
}
