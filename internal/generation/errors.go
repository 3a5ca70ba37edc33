package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when hashtag generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate hashtags from text")

	// ErrInvalidResponse is returned when the backend replied but its content did not
	// carry a well-formed hashtags array
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrBackendUnavailable is returned when the backend cannot be reached or
	// answers with a non-success status
	ErrBackendUnavailable = errors.New("language model backend unavailable")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
