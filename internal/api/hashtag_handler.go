package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/hashtag-api/internal/api/shared"
	"github.com/phrazzld/hashtag-api/internal/config"
	"github.com/phrazzld/hashtag-api/internal/domain"
	"github.com/phrazzld/hashtag-api/internal/platform/logger"
	"github.com/phrazzld/hashtag-api/internal/service"
)

// MsgEmptyText is returned when the request text is missing, empty or whitespace.
const MsgEmptyText = "Text must not be null or empty."

// modelTag is the validation tag that checks a model against the allow-list.
const modelTag = "allowed_model"

// HashtagHandler handles hashtag generation HTTP requests
type HashtagHandler struct {
	hashtagService  service.HashtagService
	defaultModel    string
	availableModels []string
	validator       *validator.Validate
}

// NewHashtagHandler creates a new HashtagHandler.
//
// Parameters:
//   - hashtagService: The service that runs generation
//   - cfg: Supplies the default model and the model allow-list
//
// Returns:
//   - A handler ready to be mounted on a router
func NewHashtagHandler(hashtagService service.HashtagService, cfg config.GenerationConfig) *HashtagHandler {
	allowed := make(map[string]struct{}, len(cfg.AvailableModels))
	for _, m := range cfg.AvailableModels {
		allowed[m] = struct{}{}
	}

	// Model names may contain tag syntax such as ',' or '|', so the allow-list
	// is checked by a registered function instead of a oneof parameter.
	v := validator.New()
	_ = v.RegisterValidation(modelTag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})

	return &HashtagHandler{
		hashtagService:  hashtagService,
		defaultModel:    cfg.DefaultModel,
		availableModels: cfg.AvailableModels,
		validator:       v,
	}
}

// GenerateHashtags handles POST /hashtags requests
func (h *HashtagHandler) GenerateHashtags(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("received hashtag generation request")

	var req GenerateHashtagsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err)
		return
	}

	genReq, err := h.toGenerationRequest(req)
	if err != nil {
		log.Warn("invalid request", "error", err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	outcome, err := h.hashtagService.GenerateHashtags(r.Context(), genReq)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, outcomeToResponse(outcome))
}

// toGenerationRequest trims the text, resolves the model and checks both.
func (h *HashtagHandler) toGenerationRequest(req GenerateHashtagsRequest) (domain.GenerationRequest, error) {
	var text string
	if req.Text != nil {
		text = strings.TrimSpace(*req.Text)
	}
	if err := h.validator.Var(text, "required"); err != nil {
		return domain.GenerationRequest{}, domain.NewValidationError("text", MsgEmptyText, domain.ErrEmptyText)
	}

	model := h.defaultModel
	if req.Model != nil && strings.TrimSpace(*req.Model) != "" {
		model = *req.Model
	}
	if err := h.validator.Var(model, modelTag); err != nil {
		return domain.GenerationRequest{}, domain.NewValidationError("model",
			fmt.Sprintf("Model '%s' is not supported. Available models: %s",
				model, strings.Join(h.availableModels, ", ")),
			domain.ErrUnsupportedModel)
	}

	return domain.GenerationRequest{
		Text:  text,
		Model: model,
		Count: req.Count,
	}, nil
}
