package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sezzlegate/internal/application/payment/usecases"
	"sezzlegate/internal/shared/constants"
	"sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
	"sezzlegate/internal/shared/utils"
)

// OrderHandler serves the backend order screen and its payment actions.
type OrderHandler struct {
	getOrderUC     getOrderUseCase
	releaseOrderUC releaseOrderUseCase
	captureOrderUC captureOrderUseCase
	refundOrderUC  refundOrderUseCase
	logger         logger.Interface
}

func NewOrderHandler(
	getOrderUC getOrderUseCase,
	releaseOrderUC releaseOrderUseCase,
	captureOrderUC captureOrderUseCase,
	refundOrderUC refundOrderUseCase,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		getOrderUC:     getOrderUC,
		releaseOrderUC: releaseOrderUC,
		captureOrderUC: captureOrderUC,
		refundOrderUC:  refundOrderUC,
		logger:         logger,
	}
}

// PaymentActionRequest is the body of release, capture and refund calls.
type PaymentActionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required,len=3"`
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderUUID, ok := h.orderUUIDParam(c)
	if !ok {
		return
	}

	order, err := h.getOrderUC.Execute(c.Request.Context(), orderUUID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			h.logger.Errorw("failed to get order", "order_uuid", orderUUID, "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", order)
}

func (h *OrderHandler) ReleaseOrder(c *gin.Context) {
	orderUUID, req, ok := h.bindAction(c)
	if !ok {
		return
	}

	result := h.releaseOrderUC.Execute(c.Request.Context(), usecases.ReleaseOrderCommand{
		OrderUUID: orderUUID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	h.respondAction(c, constants.ActionRelease, orderUUID, result)
}

func (h *OrderHandler) CaptureOrder(c *gin.Context) {
	orderUUID, req, ok := h.bindAction(c)
	if !ok {
		return
	}

	result := h.captureOrderUC.Execute(c.Request.Context(), usecases.CaptureOrderCommand{
		OrderUUID: orderUUID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	h.respondAction(c, constants.ActionCapture, orderUUID, result)
}

func (h *OrderHandler) RefundOrder(c *gin.Context) {
	orderUUID, req, ok := h.bindAction(c)
	if !ok {
		return
	}

	result := h.refundOrderUC.Execute(c.Request.Context(), usecases.RefundOrderCommand{
		OrderUUID: orderUUID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	h.respondAction(c, constants.ActionRefund, orderUUID, result)
}

func (h *OrderHandler) orderUUIDParam(c *gin.Context) (string, bool) {
	orderUUID := c.Param("uuid")
	if _, err := uuid.Parse(orderUUID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid order uuid")
		return "", false
	}
	return orderUUID, true
}

func (h *OrderHandler) bindAction(c *gin.Context) (string, PaymentActionRequest, bool) {
	var req PaymentActionRequest

	orderUUID, ok := h.orderUUIDParam(c)
	if !ok {
		return "", req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("failed to bind payment action request", "order_uuid", orderUUID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return "", req, false
	}
	return orderUUID, req, true
}

// respondAction answers 422 with the handled message when the action failed.
func (h *OrderHandler) respondAction(c *gin.Context, action, orderUUID string, result usecases.Result) {
	if !result.Success {
		h.logger.Infow("payment action rejected",
			"action", action,
			"order_uuid", orderUUID,
			"subject", c.GetString(constants.ContextKeySubject),
			"message", result.Message)
		utils.ActionFailedResponse(c, result.Message)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
