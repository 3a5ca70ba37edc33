package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/hashtag-api/internal/config"
	"github.com/phrazzld/hashtag-api/internal/generation"
	"github.com/phrazzld/hashtag-api/internal/platform/ollama"
	"github.com/phrazzld/hashtag-api/internal/service"
)

// application holds all the shared application dependencies to simplify management.
type application struct {
	config *config.Config
	logger *slog.Logger

	// generator is the process-wide backend client; its HTTP client and rate
	// limiter are shared by every request.
	generator      generation.Generator
	hashtagService service.HashtagService
}

// newApplication creates a new application instance with the Ollama client
// as generator.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := ollama.NewClient(cfg.Ollama, logger.With("component", "ollama_client"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Ollama client: %w", err)
	}
	logger.Info("Ollama client initialized",
		"endpoint", client.Endpoint(),
		"timeout", cfg.Ollama.Timeout(),
		"rate_limit", cfg.Ollama.RateLimit)

	return newApplicationWithGenerator(cfg, logger, client)
}

// newApplicationWithGenerator builds the service graph around gen.
func newApplicationWithGenerator(
	cfg *config.Config,
	logger *slog.Logger,
	gen generation.Generator,
) (*application, error) {
	hashtagService, err := service.NewHashtagService(gen, cfg.Generation, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create hashtag service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:         cfg,
		logger:         logger,
		generator:      gen,
		hashtagService: hashtagService,
	}, nil
}

// Run starts the application server and blocks until ctx is cancelled.
// It returns an error if the server fails to start or to shut down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
