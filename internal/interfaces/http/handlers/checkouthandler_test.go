package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/application/checkout"
	"sezzlegate/internal/interfaces/http/handlers/testutil"
	"sezzlegate/internal/shared/errors"
)

type mockCreateSessionUC struct {
	result *checkout.CreateSessionResult
	err    error
	got    checkout.SessionBuilderParameters
}

func (m *mockCreateSessionUC) Execute(ctx context.Context, params checkout.SessionBuilderParameters) (*checkout.CreateSessionResult, error) {
	m.got = params
	return m.result, m.err
}

type mockCompleteCheckoutUC struct {
	result *checkout.CompleteCheckoutResult
	err    error
}

func (m *mockCompleteCheckoutUC) Execute(ctx context.Context, orderUUID string) (*checkout.CompleteCheckoutResult, error) {
	return m.result, m.err
}

func TestCheckoutHandler_CreateSession_Success(t *testing.T) {
	mockUC := &mockCreateSessionUC{result: &checkout.CreateSessionResult{
		OrderUUID:   testOrderUUID,
		CheckoutURL: "https://checkout.example/abc",
	}}
	handler := NewCheckoutHandler(mockUC, nil, testutil.NewMockLogger())

	body := map[string]any{
		"basket_unique_id": "basket-1",
		"user_data":        map[string]string{"email": "a@example.com", "first_name": "A", "last_name": "B"},
		"basket_data":      map[string]any{"currency": "USD", "amount_total": "10.00"},
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout/sessions", body)

	handler.CreateSession(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "basket-1", mockUC.got.BasketUniqueID)
	assert.Equal(t, "10.00", mockUC.got.BasketData.AmountTotal)
}

func TestCheckoutHandler_CreateSession_ValidationError(t *testing.T) {
	mockUC := &mockCreateSessionUC{err: errors.NewValidationError("invalid checkout parameters", "email is required")}
	handler := NewCheckoutHandler(mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout/sessions", map[string]string{})

	handler.CreateSession(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
}

func TestCheckoutHandler_CompleteCheckout(t *testing.T) {
	mockUC := &mockCompleteCheckoutUC{result: &checkout.CompleteCheckoutResult{
		OrderUUID:     testOrderUUID,
		PaymentStatus: "reserved",
		AuthAmount:    "10.00",
	}}
	handler := NewCheckoutHandler(nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout/"+testOrderUUID+"/complete", nil)
	testutil.SetURLParam(c, "uuid", testOrderUUID)

	handler.CompleteCheckout(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutHandler_CompleteCheckout_InvalidUUID(t *testing.T) {
	handler := NewCheckoutHandler(nil, &mockCompleteCheckoutUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/checkout/x/complete", nil)
	testutil.SetURLParam(c, "uuid", "x")

	handler.CompleteCheckout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
