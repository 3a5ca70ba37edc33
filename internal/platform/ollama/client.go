package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"text/template"

	"github.com/invopop/jsonschema"
	"github.com/phrazzld/hashtag-api/internal/config"
	"github.com/phrazzld/hashtag-api/internal/generation"
	"github.com/phrazzld/hashtag-api/internal/redact"
	"golang.org/x/time/rate"
)

const (
	// generatePath is the backend endpoint for single-shot completions.
	generatePath = "/api/generate"

	// maxResponseBytes caps how much of a backend reply is read.
	maxResponseBytes = 4 << 20

	// maxLoggedBodyBytes caps how much of a raw reply is written to debug logs.
	maxLoggedBodyBytes = 2048

	defaultPromptTemplate = "Generate a list of {{.Count}} hashtags for the given text, " +
		"preferably in its language. Respond using JSON (array of strings named hashtags). " +
		"Text: {{.Text}}."
)

// Client implements the generation.Generator interface using the Ollama
// /api/generate endpoint.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// endpoint is the full URL of the generate endpoint
	endpoint string

	// httpClient is shared by every call for the lifetime of the process
	httpClient *http.Client

	// limiter throttles calls across all requests; nil means unlimited
	limiter *rate.Limiter

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// format is the structured-output schema sent with every request
	format *jsonschema.Schema
}

var _ generation.Generator = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimiter replaces the limiter built from configuration. A nil
// limiter disables throttling.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates a Client for the backend described by cfg.
//
// Parameters:
//   - cfg: backend URL, per-call timeout, and rate limit settings
//   - logger: a structured logger for operation logging
//   - opts: optional overrides, mostly for tests
//
// Returns:
//   - A ready Client, or an error wrapping generation.ErrInvalidConfig
func NewClient(cfg config.OllamaConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.URL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid backend URL %q", generation.ErrInvalidConfig, cfg.URL)
	}

	tmpl, err := template.New("hashtags").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	c := &Client{
		logger:         logger,
		endpoint:       base.String() + generatePath,
		httpClient:     &http.Client{Timeout: cfg.Timeout()},
		promptTemplate: tmpl,
		format:         newFormatSchema(),
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// createPrompt renders the instruction prompt for one call.
func (c *Client) createPrompt(text string, count int) (string, error) {
	var buf bytes.Buffer
	if err := c.promptTemplate.Execute(&buf, promptData{Count: count, Text: text}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// Generate performs one call to the backend asking for count hashtags.
//
// Transport errors and non-2xx statuses produce a hard failure wrapping
// generation.ErrBackendUnavailable. If ctx is done, the hard failure wraps
// ctx.Err() instead. A reply that cannot be decoded into a hashtags array
// produces a soft failure wrapping generation.ErrInvalidResponse.
func (c *Client) Generate(ctx context.Context, text, model string, count int) generation.Result {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return generation.HardFailure(ctxErr)
			}
			return generation.HardFailure(fmt.Errorf("%w: rate limiter: %v", generation.ErrGenerationFailed, err))
		}
	}

	prompt, err := c.createPrompt(text, count)
	if err != nil {
		return generation.HardFailure(fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err))
	}

	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Format: c.format,
	})
	if err != nil {
		return generation.HardFailure(fmt.Errorf("%w: failed to marshal request: %v", generation.ErrGenerationFailed, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return generation.HardFailure(fmt.Errorf("%w: failed to build request: %v", generation.ErrGenerationFailed, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Calling inference backend",
		"model", model,
		"count", count,
		"prompt_length", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(ctx, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "Failed to close backend response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.transportFailure(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "Inference backend returned non-success status",
			"status_code", resp.StatusCode,
			"body", truncate(raw, maxLoggedBodyBytes))
		return generation.HardFailure(fmt.Errorf("%w: unexpected status %d", generation.ErrBackendUnavailable, resp.StatusCode))
	}

	c.logger.DebugContext(ctx, "Inference backend raw response",
		"body", truncate(raw, maxLoggedBodyBytes))

	hashtags, err := parseHashtags(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "Could not parse hashtags from backend response",
			"error", redact.Error(err))
		return generation.SoftFailure(err)
	}

	return generation.Success(hashtags)
}

// transportFailure classifies an error from sending the request or reading
// its body.
func (c *Client) transportFailure(ctx context.Context, err error) generation.Result {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return generation.HardFailure(ctxErr)
	}
	c.logger.ErrorContext(ctx, "Failed to communicate with inference backend",
		"error", redact.Error(err))
	return generation.HardFailure(fmt.Errorf("%w: %v", generation.ErrBackendUnavailable, err))
}

// parseHashtags performs the two-stage decode of a generate reply: the outer
// envelope first, then the JSON document embedded in its response string.
// Non-string array elements are skipped.
func parseHashtags(raw []byte) ([]string, error) {
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope: %v", generation.ErrInvalidResponse, err)
	}
	if envelope.Response == nil {
		return nil, fmt.Errorf("%w: missing response field", generation.ErrInvalidResponse)
	}

	var inner struct {
		Hashtags []json.RawMessage `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(*envelope.Response), &inner); err != nil {
		return nil, fmt.Errorf("%w: malformed response document: %v", generation.ErrInvalidResponse, err)
	}
	if inner.Hashtags == nil {
		return nil, fmt.Errorf("%w: missing hashtags array", generation.ErrInvalidResponse)
	}

	hashtags := make([]string, 0, len(inner.Hashtags))
	for _, element := range inner.Hashtags {
		var s string
		if bytes.Equal(bytes.TrimSpace(element), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(element, &s); err != nil {
			continue
		}
		hashtags = append(hashtags, s)
	}

	return hashtags, nil
}

// truncate returns at most n bytes of b as a string, marking the cut.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}
