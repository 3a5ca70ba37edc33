package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/hashtag-api/internal/config"
	"github.com/phrazzld/hashtag-api/internal/domain"
	"github.com/phrazzld/hashtag-api/internal/generation"
	"github.com/phrazzld/hashtag-api/internal/platform/logger"
)

// Messages reported in GenerationOutcome.Error.
const (
	MsgParseFailure    = "Could not parse hashtags from backend response."
	MsgGenerationError = "An error occurred while generating hashtags."
	msgShortfallFormat = "Could not generate the requested number of hashtags after %d attempts."
)

// HashtagService generates hashtags for a piece of text.
type HashtagService interface {
	// GenerateHashtags calls the backend until the requested number of unique
	// hashtags is collected or the retry budget is spent.
	//
	// A shortfall is not an error: the outcome carries what was collected and
	// a message in its Error field. The returned error is non-nil only when the
	// context ends or every attempt failed to reach the backend.
	GenerateHashtags(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationOutcome, error)
}

// generationState is the per-request state threaded through the retry loop.
type generationState struct {
	attempt   int
	collected *domain.HashtagSet
	lastErr   string

	// unreachable counts attempts that failed because the backend could not be reached.
	unreachable int
	firstHard   error
}

type hashtagServiceImpl struct {
	generator   generation.Generator
	maxRetries  int
	maxHashtags int
	logger      *slog.Logger
}

// NewHashtagService creates a new HashtagService.
//
// Parameters:
//   - gen: The backend port used for every attempt
//   - cfg: Retry budget and count ceiling
//   - logger: Base logger; slog.Default() is used when nil
//
// Returns:
//   - A ready HashtagService, or an error if gen is nil or the limits are below one
func NewHashtagService(
	gen generation.Generator,
	cfg config.GenerationConfig,
	logger *slog.Logger,
) (HashtagService, error) {
	if gen == nil {
		return nil, &HashtagServiceError{
			Operation: "create_service",
			Message:   "generator cannot be nil",
			Err:       ErrNilGenerator,
		}
	}
	if cfg.MaxRetries < 1 || cfg.MaxHashtags < 1 {
		return nil, &HashtagServiceError{
			Operation: "create_service",
			Message: fmt.Sprintf("max_retries (%d) and max_hashtags (%d) must be at least 1",
				cfg.MaxRetries, cfg.MaxHashtags),
			Err: ErrInvalidServiceConfig,
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &hashtagServiceImpl{
		generator:   gen,
		maxRetries:  cfg.MaxRetries,
		maxHashtags: cfg.MaxHashtags,
		logger:      logger.With("component", "hashtag_service"),
	}, nil
}

// GenerateHashtags implements HashtagService.
func (s *hashtagServiceImpl) GenerateHashtags(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.GenerationOutcome, error) {
	log := s.logger
	if reqLogger := logger.FromContextOrDefault(ctx, nil); reqLogger != nil {
		log = reqLogger.With("component", "hashtag_service")
	}
	log = log.With("generation_id", uuid.New().String())

	count, clamped := domain.NormalizeCount(req.Count, domain.DefaultHashtagCount, s.maxHashtags)
	if req.Count <= 0 {
		log.DebugContext(ctx, "invalid count, using default",
			"requested", req.Count,
			"default", count)
	} else if clamped {
		log.WarnContext(ctx, "requested count exceeds maximum, limiting",
			"requested", req.Count,
			"max", s.maxHashtags)
	}

	log.InfoContext(ctx, "starting hashtag generation",
		"text_length", len(req.Text),
		"model", req.Model,
		"count", count)

	state := generationState{collected: domain.NewHashtagSet()}

	for state.collected.Len() < count && state.attempt < s.maxRetries {
		if err := ctx.Err(); err != nil {
			log.InfoContext(ctx, "generation stopped by context",
				"attempts", state.attempt,
				"error", err)
			return nil, err
		}

		state.attempt++
		log.DebugContext(ctx, "generation attempt",
			"attempt", state.attempt,
			"max_retries", s.maxRetries)

		res := s.attempt(ctx, req, count)

		switch res.Kind {
		case generation.KindSuccess:
			kept, dropped := domain.SanitizeCandidates(res.Batch)
			if len(dropped) > 0 {
				log.DebugContext(ctx, "dropped candidates containing whitespace",
					"dropped_count", len(dropped),
					"dropped", dropped)
			}
			added := state.collected.Merge(kept)
			log.DebugContext(ctx, "merged batch",
				"received", len(res.Batch),
				"kept", len(kept),
				"added", added,
				"total", state.collected.Len())

		case generation.KindSoftFailure:
			log.DebugContext(ctx, "backend response could not be parsed",
				"attempt", state.attempt,
				"error", res.Err)
			state.lastErr = MsgParseFailure

		default:
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.InfoContext(ctx, "generation stopped by context",
					"attempts", state.attempt,
					"error", ctxErr)
				return nil, ctxErr
			}
			log.ErrorContext(ctx, "generation attempt failed",
				"attempt", state.attempt,
				"error", res.Err)
			state.lastErr = MsgGenerationError
			if errors.Is(res.Err, generation.ErrBackendUnavailable) {
				state.unreachable++
			}
			if state.firstHard == nil {
				state.firstHard = res.Err
			}
		}
	}

	outcome := &domain.GenerationOutcome{
		Count:    count,
		Model:    req.Model,
		Hashtags: state.collected.Take(count),
		Attempts: state.attempt,
	}

	if outcome.Complete() {
		log.InfoContext(ctx, "successfully generated hashtags",
			"count", len(outcome.Hashtags),
			"attempts", state.attempt)
		return outcome, nil
	}

	if state.attempt > 0 && state.unreachable == state.attempt {
		log.ErrorContext(ctx, "backend unreachable on every attempt",
			"attempts", state.attempt)
		return nil, NewHashtagServiceError("generate_hashtags",
			fmt.Sprintf("backend unreachable after %d attempts", state.attempt),
			state.firstHard)
	}

	shortfall := fmt.Sprintf(msgShortfallFormat, s.maxRetries)
	log.WarnContext(ctx, shortfall,
		"requested", count,
		"generated", len(outcome.Hashtags))

	outcome.Error = state.lastErr
	if outcome.Error == "" {
		outcome.Error = shortfall
	}
	return outcome, nil
}

// attempt makes one backend call. A panicking generator counts as a failed attempt.
func (s *hashtagServiceImpl) attempt(
	ctx context.Context,
	req domain.GenerationRequest,
	count int,
) (res generation.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = generation.HardFailure(fmt.Errorf("%w: generator panicked: %v",
				generation.ErrGenerationFailed, r))
		}
	}()
	return s.generator.Generate(ctx, req.Text, req.Model, count)
}
