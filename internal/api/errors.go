package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/hashtag-api/internal/domain"
	"github.com/phrazzld/hashtag-api/internal/generation"
)

// User-facing messages for non-validation failures.
const (
	MsgInvalidRequestFormat = "Invalid request format."
	MsgBackendUnavailable   = "Unable to connect to the AI service. Please ensure Ollama is running."
	MsgUnexpectedError      = "An unexpected error occurred while processing your request."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrBackendUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message

	case errors.Is(err, generation.ErrBackendUnavailable):
		return MsgBackendUnavailable

	default:
		return MsgUnexpectedError
	}
}
