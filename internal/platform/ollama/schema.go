package ollama

import "github.com/invopop/jsonschema"

// newFormatSchema builds the structured-output schema for hashtagsPayload:
//
//	{"type":"object","properties":{"hashtags":{"type":"array","items":{"type":"string"}}},"required":["hashtags"]}
//
// Definitions are inlined and the $schema/$id keys dropped, since the backend
// only needs the shape.
func newFormatSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&hashtagsPayload{})
	s.Version = ""
	return s
}
