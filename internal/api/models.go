package api

import (
	"github.com/phrazzld/hashtag-api/internal/domain"
)

// GenerateHashtagsRequest defines the payload for the hashtag generation endpoint.
type GenerateHashtagsRequest struct {
	// Text is the content to generate hashtags for. It is trimmed before use.
	Text *string `json:"text"`

	// Model selects the backend model. Empty or missing selects the default model.
	Model *string `json:"model,omitempty"`

	// Count is the number of hashtags wanted. Zero or negative selects the
	// default; values above the configured maximum are clamped.
	Count int `json:"count"`
}

// GenerateHashtagsResponse defines the successful response for the hashtag generation endpoint.
type GenerateHashtagsResponse struct {
	// Count is the normalized number of hashtags that was targeted
	Count int `json:"count"`

	// Model is the model that served the request
	Model string `json:"model"`

	// Hashtags holds at most Count unique, lowercase hashtags
	Hashtags []string `json:"hashtags"`

	// Error explains a shortfall; it is omitted when the target was met
	Error string `json:"error,omitempty"`
}

// outcomeToResponse converts a domain.GenerationOutcome to a GenerateHashtagsResponse
func outcomeToResponse(outcome *domain.GenerationOutcome) GenerateHashtagsResponse {
	hashtags := outcome.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	return GenerateHashtagsResponse{
		Count:    outcome.Count,
		Model:    outcome.Model,
		Hashtags: hashtags,
		Error:    outcome.Error,
	}
}
