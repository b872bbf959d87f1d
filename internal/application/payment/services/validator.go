package services

import (
	"context"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/shared/logger"
)

// PaymentActionValidator checks a requested amount against what the order
// still allows for the given action.
type PaymentActionValidator struct {
	repo   order.Repository
	logger logger.Interface
}

func NewPaymentActionValidator(repo order.Repository, log logger.Interface) *PaymentActionValidator {
	return &PaymentActionValidator{repo: repo, logger: log}
}

// IsAmountValid reports whether amount may be captured, released or refunded.
// Release and capture are bounded by the open authorization, refunds by the
// captured amount not yet refunded.
func (v *PaymentActionValidator) IsAmountValid(ctx context.Context, orderUUID string, amount decimal.Decimal, action vo.PaymentAction) bool {
	if !action.IsValid() || !amount.IsPositive() {
		return false
	}

	o, err := v.repo.GetByTemporaryID(ctx, orderUUID)
	if err != nil {
		v.logger.Warnw("amount validation failed to load order",
			"order_uuid", orderUUID,
			"action", action,
			"error", err,
		)
		return false
	}

	cents, err := vo.CentsFromDecimal(amount)
	if err != nil {
		return false
	}
	attrs := o.Attributes()

	var limit decimal.Decimal
	switch action {
	case vo.PaymentActionCapture, vo.PaymentActionRelease:
		limit = attrs.AuthAmount
	case vo.PaymentActionRefund:
		limit = attrs.Refundable()
	}
	return cents <= vo.FormatToCents(limit)
}
