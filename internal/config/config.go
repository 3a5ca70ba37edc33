package config

import (
	"fmt"
	"slices"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Ollama     OllamaConfig     `mapstructure:"ollama"     validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// OllamaConfig contains the settings for the local inference backend.
type OllamaConfig struct {
	// URL is the backend base URL, e.g. http://localhost:11434
	URL string `mapstructure:"url" validate:"required,url"`

	// TimeoutSeconds caps a single backend call. Zero leaves only the
	// transport's own limits in place.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`

	// RateLimit is the maximum number of backend calls per second across the
	// whole process. Zero disables throttling.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`

	// Burst is the number of calls allowed to exceed RateLimit momentarily.
	Burst int `mapstructure:"burst" validate:"gte=1"`
}

// Timeout returns the per-call timeout as a duration.
func (c OllamaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GenerationConfig contains the hashtag generation policy.
type GenerationConfig struct {
	// MaxRetries is the hard cap on backend calls per request.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=1"`

	// MaxHashtags is the largest count a request may ask for.
	MaxHashtags int `mapstructure:"max_hashtags" validate:"gte=1"`

	// DefaultModel is used when a request does not name a model.
	DefaultModel string `mapstructure:"default_model" validate:"required"`

	// AvailableModels is the allow-list of model identifiers.
	AvailableModels []string `mapstructure:"available_models" validate:"required,min=1,dive,required"`
}

// Validate checks constraints that span several fields.
func (c GenerationConfig) Validate() error {
	if !slices.Contains(c.AvailableModels, c.DefaultModel) {
		return fmt.Errorf("default model %q is not in available models %v", c.DefaultModel, c.AvailableModels)
	}
	return nil
}
