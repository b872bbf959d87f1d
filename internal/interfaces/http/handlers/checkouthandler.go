package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sezzlegate/internal/application/checkout"
	"sezzlegate/internal/shared/logger"
	"sezzlegate/internal/shared/utils"
)

type createSessionUseCase interface {
	Execute(ctx context.Context, params checkout.SessionBuilderParameters) (*checkout.CreateSessionResult, error)
}

type completeCheckoutUseCase interface {
	Execute(ctx context.Context, orderUUID string) (*checkout.CompleteCheckoutResult, error)
}

// CheckoutHandler is called by the storefront.
type CheckoutHandler struct {
	createSessionUC    createSessionUseCase
	completeCheckoutUC completeCheckoutUseCase
	logger             logger.Interface
}

func NewCheckoutHandler(
	createSessionUC createSessionUseCase,
	completeCheckoutUC completeCheckoutUseCase,
	logger logger.Interface,
) *CheckoutHandler {
	return &CheckoutHandler{
		createSessionUC:    createSessionUC,
		completeCheckoutUC: completeCheckoutUC,
		logger:             logger,
	}
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var params checkout.SessionBuilderParameters
	if err := c.ShouldBindJSON(&params); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.createSessionUC.Execute(c.Request.Context(), params)
	if err != nil {
		h.logger.Errorw("failed to create checkout session",
			"basket_unique_id", params.BasketUniqueID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "checkout session created")
}

func (h *CheckoutHandler) CompleteCheckout(c *gin.Context) {
	orderUUID := c.Param("uuid")
	if _, err := uuid.Parse(orderUUID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid order uuid")
		return
	}

	result, err := h.completeCheckoutUC.Execute(c.Request.Context(), orderUUID)
	if err != nil {
		h.logger.Errorw("failed to complete checkout", "order_uuid", orderUUID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
