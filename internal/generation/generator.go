package generation

import (
	"context"
)

// Generator defines the interface for asking a language model for hashtags.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate performs exactly one backend round-trip asking for count hashtags
	// describing text, using the given model. It never retries; retrying is the
	// caller's decision.
	//
	// Implementations must honor ctx cancellation and must not sanitize the
	// candidates they return.
	Generate(ctx context.Context, text, model string, count int) Result
}
