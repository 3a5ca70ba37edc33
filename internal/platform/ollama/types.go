package ollama

import "github.com/invopop/jsonschema"

// promptData represents the data passed to the prompt template
type promptData struct {
	Count int
	Text  string
}

// hashtagsPayload is the document the model is constrained to produce. The
// structured-output schema sent to the backend is reflected from it.
type hashtagsPayload struct {
	Hashtags []string `json:"hashtags"`
}

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Model  string             `json:"model"`
	Prompt string             `json:"prompt"`
	Stream bool               `json:"stream"`
	Format *jsonschema.Schema `json:"format"`
}

// generateResponse holds the envelope fields the client reads. Everything
// else the backend returns (timings, context, done flags) is ignored.
// Response is a pointer so a missing field can be told apart from "".
type generateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
}
