// Package main implements the entry point for the hashtag API server,
// which turns a piece of text into a list of hashtags using a local
// Ollama backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/phrazzld/hashtag-api/internal/config"
	"github.com/phrazzld/hashtag-api/internal/platform/logger"
)

// dotEnvPath is the optional environment file read before configuration.
const dotEnvPath = ".env"

// configFileEnv names an explicit YAML config file. When unset, config.yaml in
// the working directory is read if present.
const configFileEnv = "HASHTAG_CONFIG_FILE"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("hashtag-api: %v", err)
	}
}

// run wires the application together and blocks until ctx is cancelled or the
// server fails.
func run(ctx context.Context) error {
	cfg, l, err := initializeApp(dotEnvPath)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads the .env file, the configuration and sets up logging.
// Returns the loaded config, the root logger and any initialization error.
func initializeApp(envPath string) (*config.Config, *slog.Logger, error) {
	if err := loadDotEnv(envPath); err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_model", cfg.Generation.DefaultModel,
		"max_retries", cfg.Generation.MaxRetries,
		"max_hashtags", cfg.Generation.MaxHashtags)

	return cfg, l, nil
}

// loadConfig reads the file named by HASHTAG_CONFIG_FILE, falling back to the
// optional config.yaml lookup.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv(configFileEnv); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// loadDotEnv loads environment variables from path. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
