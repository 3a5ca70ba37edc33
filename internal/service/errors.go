package service

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the service layer.
var (
	// ErrNilGenerator is returned when a service is built without a generator.
	ErrNilGenerator = errors.New("generator cannot be nil")

	// ErrInvalidServiceConfig is returned when the generation limits are unusable.
	ErrInvalidServiceConfig = errors.New("invalid service configuration")
)

// HashtagServiceError wraps errors from the hashtag service with context.
type HashtagServiceError struct {
	// Operation is the operation that failed (e.g., "generate_hashtags")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for HashtagServiceError.
func (e *HashtagServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hashtag service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("hashtag service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *HashtagServiceError) Unwrap() error {
	return e.Err
}

// NewHashtagServiceError creates a new HashtagServiceError.
// Context errors are returned directly without wrapping.
func NewHashtagServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return &HashtagServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
