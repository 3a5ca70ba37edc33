package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "HASHTAG"

// Default configuration values.
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
	DefaultOllamaURL              = "http://localhost:11434"
	DefaultBurst                  = 1
	DefaultMaxRetries             = 10
	DefaultMaxHashtags            = 30
	DefaultModel                  = "gemma3:270m"
)

// DefaultAvailableModels is the model allow-list used when none is configured.
var DefaultAvailableModels = []string{"gemma3:270m", "gemma3:1b"}

// Load configuration from environment variables and optionally a config.yaml
// file in the working directory. Environment variables take precedence over
// values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshalAndValidate(v)
}

// LoadFile loads configuration from the YAML file at path, with environment
// variables still taking precedence. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	v := newViper()

	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshalAndValidate(v)
}

// newViper creates a viper instance with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("ollama.url", DefaultOllamaURL)
	v.SetDefault("ollama.timeout_seconds", 0)
	v.SetDefault("ollama.rate_limit", 0)
	v.SetDefault("ollama.burst", DefaultBurst)
	v.SetDefault("generation.max_retries", DefaultMaxRetries)
	v.SetDefault("generation.max_hashtags", DefaultMaxHashtags)
	v.SetDefault("generation.default_model", DefaultModel)
	v.SetDefault("generation.available_models", DefaultAvailableModels)

	// HASHTAG_OLLAMA_URL maps to ollama.url, and so on.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// unmarshalAndValidate decodes the viper state into a Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Generation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
