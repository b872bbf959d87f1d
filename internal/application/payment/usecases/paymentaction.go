package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/shared/db"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/goroutine"
	"sezzlegate/internal/shared/logger"
)

const (
	msgInvalidAmount    = "Invalid amount"
	msgOrderNotFound    = "Order not found"
	msgActionInProgress = "Another payment action is in progress for this order"

	divergenceNotifyTimeout = 30 * time.Second
)

// paymentActionSupport carries the collaborators shared by capture, release
// and refund. The optional ones are attached with setters.
type paymentActionSupport struct {
	orders        order.Repository
	validator     AmountValidator
	orderStatus   OrderStatusUpdater
	paymentStatus PaymentStatusUpdater
	orderData     OrderDataApplier
	exceptions    ExceptionHandler
	txRunner      db.Runner
	logger        logger.Interface

	locker   ActionLocker
	recorder ActionRecorder
	notifier DivergenceNotifier
}

// SetActionLocker enables per-order serialisation of payment actions.
func (s *paymentActionSupport) SetActionLocker(locker ActionLocker) {
	s.locker = locker
}

func (s *paymentActionSupport) SetActionRecorder(recorder ActionRecorder) {
	s.recorder = recorder
}

// SetDivergenceNotifier sets who hears about provider actions that could not be
// booked locally.
func (s *paymentActionSupport) SetDivergenceNotifier(notifier DivergenceNotifier) {
	s.notifier = notifier
}

// actionPlan describes one payment action. call performs the remote request;
// book updates the order inside the local transaction.
type actionPlan struct {
	action       vo.PaymentAction
	errContext   string
	emptyUUIDMsg string
	orderUUID    string
	amount       decimal.Decimal
	currency     string
	call         func(ctx context.Context, amount vo.Amount) (*ProviderAction, error)
	book         func(ctx context.Context, o *order.Order, amount decimal.Decimal) error
}

func (s *paymentActionSupport) execute(ctx context.Context, p actionPlan) Result {
	err := s.run(ctx, p)

	if s.recorder != nil {
		s.recorder.RecordPaymentAction(p.action.String(), err == nil)
	}
	if err != nil {
		return failureResult(s.exceptions.Handle(err, p.errContext).CompleteMessage())
	}
	return successResult()
}

func (s *paymentActionSupport) run(ctx context.Context, p actionPlan) error {
	amount, err := vo.AmountFromDecimal(p.amount, p.currency)
	if err != nil {
		return apperrors.NewValidationError(msgInvalidAmount, err.Error())
	}

	release, err := s.acquire(ctx, p.orderUUID)
	if err != nil {
		return err
	}
	defer release()

	if !s.validator.IsAmountValid(ctx, p.orderUUID, amount.InCurrencyUnits(), p.action) {
		return apperrors.NewValidationError(msgInvalidAmount)
	}

	resp, err := p.call(ctx, amount)
	if err != nil {
		return err
	}
	if resp == nil || resp.UUID == "" {
		return apperrors.NewProviderError(p.emptyUUIDMsg)
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderStatus.UpdateOrderStatus(ctx, p.orderUUID, vo.OrderStatusInProcess); err != nil {
			return err
		}

		o, err := s.orders.GetByTemporaryID(ctx, p.orderUUID)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return apperrors.NewNotFoundError(msgOrderNotFound, p.orderUUID)
			}
			return err
		}

		if err := p.book(ctx, o, amount.InCurrencyUnits()); err != nil {
			return err
		}

		tx, err := order.NewTransaction(p.orderUUID, p.action, resp.UUID, amount, resp.Raw)
		if err != nil {
			return err
		}
		return s.orders.RecordTransaction(ctx, tx)
	})
	if err != nil {
		s.reportDivergence(p, amount, resp.UUID, err)
		return err
	}

	s.logger.Infow("payment action completed",
		"action", p.action,
		"order_uuid", p.orderUUID,
		"provider_uuid", resp.UUID,
		"amount", amount.String(),
	)
	return nil
}

// acquire takes the per-order lock when a locker is set. An unreachable lock
// store does not block the action.
func (s *paymentActionSupport) acquire(ctx context.Context, orderUUID string) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}

	release, acquired, err := s.locker.TryAcquire(ctx, orderUUID)
	if err != nil {
		s.logger.Warnw("order action lock unavailable, continuing without it",
			"order_uuid", orderUUID,
			"error", err,
		)
		return noop, nil
	}
	if !acquired {
		return noop, apperrors.NewConflictError(msgActionInProgress, orderUUID)
	}
	return release, nil
}

func (s *paymentActionSupport) reportDivergence(p actionPlan, amount vo.Amount, providerUUID string, cause error) {
	s.logger.Errorw("provider accepted payment action but local update failed",
		"action", p.action,
		"order_uuid", p.orderUUID,
		"provider_uuid", providerUUID,
		"amount", amount.String(),
		"error", cause,
	)
	if s.notifier == nil {
		return
	}

	d := Divergence{
		Action:       p.action.String(),
		OrderUUID:    p.orderUUID,
		ProviderUUID: providerUUID,
		Amount:       amount.String(),
		Error:        cause.Error(),
		OccurredAt:   time.Now().UTC(),
	}
	notifier := s.notifier
	log := s.logger
	goroutine.SafeGo(log, "divergence-notify", func() {
		ctx, cancel := context.WithTimeout(context.Background(), divergenceNotifyTimeout)
		defer cancel()
		if err := notifier.NotifyDivergence(ctx, d); err != nil {
			log.Errorw("failed to send divergence notification",
				"order_uuid", d.OrderUUID,
				"error", err,
			)
		}
	}, "order_uuid", d.OrderUUID, "action", d.Action, "provider_uuid", d.ProviderUUID)
}
