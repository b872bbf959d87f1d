package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/shared/errors"
)

type paymentInput struct {
	Currency string `json:"currency" validate:"required,iso4217"`
	Amount   string `json:"amount" validate:"required,money"`
	Note     string `json:"note,omitempty" validate:"max=5"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   paymentInput
		wantErr string
	}{
		{"valid", paymentInput{Currency: "USD", Amount: "10.50"}, ""},
		{"missing currency", paymentInput{Amount: "1"}, "currency is required"},
		{"bad currency", paymentInput{Currency: "XYZ1", Amount: "1"}, "currency must be an ISO 4217 currency code"},
		{"three decimals", paymentInput{Currency: "USD", Amount: "1.005"}, "amount must be a positive amount with at most two decimals"},
		{"negative", paymentInput{Currency: "USD", Amount: "-1"}, "amount must be a positive amount"},
		{"not a number", paymentInput{Currency: "USD", Amount: "ten"}, "amount must be a positive amount"},
		{"long note", paymentInput{Currency: "USD", Amount: "1", Note: "too long"}, "note must be at most 5 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Contains(t, appErr.Details, tt.wantErr)
		})
	}
}
