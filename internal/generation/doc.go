// Package generation defines the boundary between the hashtag service and the
// language model backend that proposes candidate hashtags. It abstracts the
// details of LLM API integration (Ollama), so the retry loop in the service
// layer depends only on the Generator interface and the tagged Result it
// returns.
package generation
