package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds the size of a decoded request body.
const MaxRequestBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned by DecodeJSON when the request has no body.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrTrailingData is returned by DecodeJSON when the body holds more than one JSON value.
	ErrTrailingData = errors.New("unexpected data after JSON body")
)

// DecodeJSON decodes the request body into the given struct.
// Trailing data after the first JSON value is rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}
