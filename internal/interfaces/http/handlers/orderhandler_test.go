package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/application/payment/dto"
	"sezzlegate/internal/application/payment/usecases"
	"sezzlegate/internal/interfaces/http/handlers/testutil"
	"sezzlegate/internal/shared/errors"
)

const testOrderUUID = "6c9db6a4-2a70-4a36-9c15-2d0d7b3f4e11"

// =====================================================================
// Mock use cases
// =====================================================================

type mockGetOrderUC struct {
	result *dto.OrderDTO
	err    error
}

func (m *mockGetOrderUC) Execute(ctx context.Context, orderUUID string) (*dto.OrderDTO, error) {
	return m.result, m.err
}

type mockReleaseOrderUC struct {
	result usecases.Result
	got    usecases.ReleaseOrderCommand
}

func (m *mockReleaseOrderUC) Execute(ctx context.Context, cmd usecases.ReleaseOrderCommand) usecases.Result {
	m.got = cmd
	return m.result
}

type mockCaptureOrderUC struct {
	result usecases.Result
	got    usecases.CaptureOrderCommand
}

func (m *mockCaptureOrderUC) Execute(ctx context.Context, cmd usecases.CaptureOrderCommand) usecases.Result {
	m.got = cmd
	return m.result
}

type mockRefundOrderUC struct {
	result usecases.Result
	got    usecases.RefundOrderCommand
}

func (m *mockRefundOrderUC) Execute(ctx context.Context, cmd usecases.RefundOrderCommand) usecases.Result {
	m.got = cmd
	return m.result
}

func newTestOrderHandler(
	getOrderUC getOrderUseCase,
	releaseOrderUC releaseOrderUseCase,
	captureOrderUC captureOrderUseCase,
	refundOrderUC refundOrderUseCase,
) *OrderHandler {
	return NewOrderHandler(getOrderUC, releaseOrderUC, captureOrderUC, refundOrderUC, testutil.NewMockLogger())
}

// =====================================================================
// GetOrder
// =====================================================================

func TestOrderHandler_GetOrder_Success(t *testing.T) {
	mockUC := &mockGetOrderUC{result: &dto.OrderDTO{UUID: testOrderUUID, Number: "100001"}}
	handler := newTestOrderHandler(mockUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/backend/orders/"+testOrderUUID, nil)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.GetOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var got dto.OrderDTO
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "100001", got.Number)
}

func TestOrderHandler_GetOrder_NotFound(t *testing.T) {
	mockUC := &mockGetOrderUC{err: errors.NewNotFoundError("order not found", testOrderUUID)}
	handler := newTestOrderHandler(mockUC, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/backend/orders/"+testOrderUUID, nil)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.GetOrder(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_GetOrder_InvalidUUID(t *testing.T) {
	handler := newTestOrderHandler(&mockGetOrderUC{}, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/api/backend/orders/nope", nil)
	testutil.SetURLParam(c, "uuid", "nope")

	handler.GetOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// Payment actions
// =====================================================================

func TestOrderHandler_ReleaseOrder_Success(t *testing.T) {
	mockUC := &mockReleaseOrderUC{result: usecases.Result{Success: true}}
	handler := newTestOrderHandler(nil, mockUC, nil, nil)

	body := map[string]string{"amount": "25.50", "currency": "USD"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/backend/orders/"+testOrderUUID+"/release", body)
	testutil.SetURLParam(c, "uuid", testOrderUUID)
	testutil.SetAuthContext(c, "ops-1", "operator")

	handler.ReleaseOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testOrderUUID, mockUC.got.OrderUUID)
	assert.True(t, decimal.RequireFromString("25.50").Equal(mockUC.got.Amount))
	assert.Equal(t, "USD", mockUC.got.Currency)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestOrderHandler_ReleaseOrder_Failure(t *testing.T) {
	mockUC := &mockReleaseOrderUC{result: usecases.Result{Success: false, Message: "Invalid amount"}}
	handler := newTestOrderHandler(nil, mockUC, nil, nil)

	body := map[string]string{"amount": "999", "currency": "USD"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/backend/orders/"+testOrderUUID+"/release", body)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.ReleaseOrder(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid amount", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "payment_action_failed", resp.Error.Type)
}

func TestOrderHandler_ReleaseOrder_InvalidRequest(t *testing.T) {
	mockUC := &mockReleaseOrderUC{}
	handler := newTestOrderHandler(nil, mockUC, nil, nil)

	body := map[string]string{"amount": "10"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/backend/orders/"+testOrderUUID+"/release", body)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.ReleaseOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mockUC.got.OrderUUID)
}

func TestOrderHandler_CaptureOrder(t *testing.T) {
	mockUC := &mockCaptureOrderUC{result: usecases.Result{Success: true}}
	handler := newTestOrderHandler(nil, nil, mockUC, nil)

	body := map[string]any{"amount": 40, "currency": "USD"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/backend/orders/"+testOrderUUID+"/capture", body)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.CaptureOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decimal.NewFromInt(40).Equal(mockUC.got.Amount))
}

func TestOrderHandler_RefundOrder_Failure(t *testing.T) {
	mockUC := &mockRefundOrderUC{result: usecases.Result{Message: "Error refunding"}}
	handler := newTestOrderHandler(nil, nil, nil, mockUC)

	body := map[string]string{"amount": "5", "currency": "USD"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/backend/orders/"+testOrderUUID+"/refund", body)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.RefundOrder(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, testOrderUUID, mockUC.got.OrderUUID)
}
