package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/infrastructure/persistence/models"
)

func OrderToModel(o *order.Order) *models.OrderModel {
	attrs := o.Attributes()
	return &models.OrderModel{
		ID:             o.ID(),
		TemporaryID:    o.TemporaryID(),
		Number:         o.Number(),
		ReferenceID:    o.ReferenceID(),
		Currency:       o.Currency(),
		OrderStatus:    o.OrderStatus().String(),
		PaymentStatus:  o.PaymentStatus().String(),
		AuthAmount:     attrs.AuthAmount,
		CapturedAmount: attrs.CapturedAmount,
		ReleasedAmount: attrs.ReleasedAmount,
		RefundedAmount: attrs.RefundedAmount,
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	orderStatus := vo.OrderStatus(model.OrderStatus)
	if !orderStatus.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", model.OrderStatus)
	}
	paymentStatus := vo.PaymentStatus(model.PaymentStatus)
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", model.PaymentStatus)
	}

	return order.ReconstructOrder(
		model.ID,
		model.TemporaryID,
		model.Number,
		model.ReferenceID,
		model.Currency,
		orderStatus,
		paymentStatus,
		vo.PaymentAttributes{
			AuthAmount:     model.AuthAmount,
			CapturedAmount: model.CapturedAmount,
			ReleasedAmount: model.ReleasedAmount,
			RefundedAmount: model.RefundedAmount,
		},
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func TransactionToModel(tx *order.Transaction) *models.OrderTransactionModel {
	model := &models.OrderTransactionModel{
		ID:               tx.ID(),
		OrderTemporaryID: tx.OrderTemporaryID(),
		Action:           tx.Action().String(),
		ProviderUUID:     tx.ProviderUUID(),
		AmountInCents:    tx.Amount().AmountInCents(),
		Currency:         tx.Amount().Currency(),
		CreatedAt:        tx.CreatedAt(),
	}
	if len(tx.RawResponse()) > 0 {
		model.RawResponse = datatypes.JSON(tx.RawResponse())
	}
	return model
}

func TransactionToDomain(model *models.OrderTransactionModel) (*order.Transaction, error) {
	amount, err := vo.NewAmount(model.AmountInCents, model.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction amount: %w", err)
	}
	return order.ReconstructTransaction(
		model.ID,
		model.OrderTemporaryID,
		vo.PaymentAction(model.Action),
		model.ProviderUUID,
		amount,
		[]byte(model.RawResponse),
		model.CreatedAt,
	), nil
}
