// Package service contains the application-specific use cases of the hashtag
// API. It orchestrates the generation backend (behind generation.Generator)
// and the domain rules in internal/domain to fulfill a hashtag request.
//
// The service layer implements the application layer in the clean architecture:
// it depends on domain types and on the Generator port, never on a concrete
// backend adapter.
//
// Key components:
//
// 1. HashtagService:
//   - Runs the bounded retry loop against the Generator
//   - Sanitizes each batch and accumulates unique hashtags case-insensitively
//   - Clamps the final list to the requested count
//
// 2. Error Handling:
//   - Partial results are not errors; they are reported in the outcome's Error field
//   - Context cancellation is returned as-is so callers can stop promptly
//   - A budget spent entirely on unreachable-backend failures is returned wrapping
//     generation.ErrBackendUnavailable
package service
