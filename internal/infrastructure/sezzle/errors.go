package sezzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrProviderUnavailable is returned while the circuit breaker refuses calls.
var ErrProviderUnavailable = errors.New("sezzle gateway is temporarily unavailable")

// ErrorDetail is one entry of the provider's error body.
type ErrorDetail struct {
	Code      string `json:"code"`
	Location  string `json:"location,omitempty"`
	Message   string `json:"message"`
	DebugUUID string `json:"debug_uuid,omitempty"`
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Operation  string
	Details    []ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sezzle %s failed with status %d: %s", e.Operation, e.StatusCode, e.Message())
}

// Message joins the provider messages, falling back to the HTTP status text.
func (e *APIError) Message() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		switch {
		case d.Message != "":
			msgs = append(msgs, d.Message)
		case d.Code != "":
			msgs = append(msgs, d.Code)
		}
	}
	if len(msgs) == 0 {
		return http.StatusText(e.StatusCode)
	}
	return strings.Join(msgs, "; ")
}

// IsClientError reports 4xx answers, which say nothing about provider health.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// parseAPIError accepts either a list of error objects or a single object.
func parseAPIError(operation string, status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Operation: operation}

	var list []ErrorDetail
	if err := json.Unmarshal(body, &list); err == nil {
		apiErr.Details = list
		return apiErr
	}
	var single ErrorDetail
	if err := json.Unmarshal(body, &single); err == nil && (single.Code != "" || single.Message != "") {
		apiErr.Details = []ErrorDetail{single}
	}
	return apiErr
}
