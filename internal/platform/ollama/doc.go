// Package ollama provides an implementation of the generation.Generator
// interface backed by a local Ollama inference server.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the hashtag service to the backend's /api/generate endpoint
// without exposing its wire format to the rest of the application.
//
// Key components:
//
// 1. Client:
//   - Implements the generation.Generator interface
//   - Sends one non-streaming generate request per call, with a JSON schema
//     in the "format" field that constrains the model to {"hashtags": [...]}
//   - Shares one *http.Client and an optional rate limiter across requests
//
// 2. Response Processing:
//   - Decodes the outer envelope, then decodes its "response" string as a
//     second JSON document holding the hashtags array
//   - Reports unusable answers as soft failures and transport problems as
//     hard failures, never sanitizing the candidates themselves
package ollama
