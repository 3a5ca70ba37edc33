package domain

// GenerationRequest is a validated request to generate hashtags for a text.
// The API layer builds it after trimming the text and resolving the model.
type GenerationRequest struct {
	Text  string
	Model string
	Count int
}

// GenerationOutcome is the result of one hashtag generation request.
//
// Hashtags never holds more than Count entries. When it holds fewer, Error
// explains why; when the target was met Error is empty, even if some attempts
// failed along the way.
type GenerationOutcome struct {
	Count    int
	Model    string
	Hashtags []string
	Error    string

	// Attempts is the number of backend calls made. It is diagnostic only.
	Attempts int
}

// Complete reports whether the requested number of hashtags was generated.
func (o *GenerationOutcome) Complete() bool {
	return len(o.Hashtags) >= o.Count
}
