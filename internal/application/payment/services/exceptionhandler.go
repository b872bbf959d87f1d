package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"sezzlegate/internal/infrastructure/sezzle"
	apperrors "sezzlegate/internal/shared/errors"
	"sezzlegate/internal/shared/logger"
)

// HandledError is an error translated for display in the admin UI.
type HandledError struct {
	Code    int
	Message string
	Context string
	Err     error
}

// CompleteMessage is "code: message" when a provider status code is known.
func (h *HandledError) CompleteMessage() string {
	if h.Code != 0 {
		return fmt.Sprintf("%d: %s", h.Code, h.Message)
	}
	return h.Message
}

type ExceptionHandler struct {
	policy *bluemonday.Policy
	logger logger.Interface
}

func NewExceptionHandler(log logger.Interface) *ExceptionHandler {
	return &ExceptionHandler{
		policy: bluemonday.StrictPolicy(),
		logger: log,
	}
}

// Handle logs err under the given context and builds the message shown to the
// operator. Provider messages are stripped of markup.
func (h *ExceptionHandler) Handle(err error, context string) *HandledError {
	handled := &HandledError{Context: context, Err: err}

	var apiErr *sezzle.APIError
	var appErr *apperrors.AppError
	switch {
	case err == nil:
		handled.Message = "Unknown error"
	case errors.As(err, &apiErr):
		handled.Code = apiErr.StatusCode
		handled.Message = apiErr.Message()
	case errors.Is(err, sezzle.ErrProviderUnavailable):
		handled.Message = sezzle.ErrProviderUnavailable.Error()
	case isContextError(err):
		handled.Message = "Payment provider request timed out"
	case errors.As(err, &appErr):
		handled.Message = appErr.Message
	default:
		handled.Message = err.Error()
	}

	handled.Message = strings.TrimSpace(h.policy.Sanitize(handled.Message))
	if handled.Message == "" {
		handled.Message = "Unknown error"
	}

	h.logger.Errorw("payment action failed",
		"context", context,
		"code", handled.Code,
		"message", handled.Message,
		"error", err,
	)
	return handled
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
