// Package config handles configuration loading, parsing, and validation
// from environment variables (HASHTAG_ prefix) and an optional YAML file.
// It provides type-safe access to server, backend, and generation policy
// settings while keeping configuration details separate from business logic.
package config
