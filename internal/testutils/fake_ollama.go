package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// OllamaReply is one scripted answer of a FakeOllama.
type OllamaReply struct {
	// Status is the HTTP status code; zero means 200.
	Status int

	// Body, when set, is written verbatim and Hashtags is ignored.
	Body string

	// Hashtags is encoded as the inner hashtags document of a well-formed reply.
	Hashtags []string
}

// HashtagsReply builds a well-formed reply carrying tags.
func HashtagsReply(tags ...string) OllamaReply {
	return OllamaReply{Hashtags: tags}
}

// RawReply builds a reply whose body is written as-is.
func RawReply(status int, body string) OllamaReply {
	return OllamaReply{Status: status, Body: body}
}

// OllamaRequest is the decoded body of a request received by a FakeOllama.
type OllamaRequest struct {
	Model  string          `json:"model"`
	Prompt string          `json:"prompt"`
	Stream bool            `json:"stream"`
	Format json.RawMessage `json:"format"`
}

// FakeOllama is an httptest server speaking the /api/generate protocol.
// Replies are served in order; once exhausted the last one repeats.
type FakeOllama struct {
	Server *httptest.Server

	mu       sync.Mutex
	replies  []OllamaReply
	requests []OllamaRequest
}

// NewFakeOllama starts a FakeOllama and registers its shutdown with t.Cleanup.
func NewFakeOllama(t *testing.T, replies ...OllamaReply) *FakeOllama {
	t.Helper()
	f := &FakeOllama{replies: replies}
	f.Server = CreateTestServer(t, http.HandlerFunc(f.serveHTTP))
	return f
}

// URL returns the base URL to configure a client with.
func (f *FakeOllama) URL() string {
	return f.Server.URL
}

// Requests returns a copy of the requests received so far.
func (f *FakeOllama) Requests() []OllamaRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]OllamaRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeOllama) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
		http.NotFound(w, r)
		return
	}

	body, _ := io.ReadAll(r.Body)
	var req OllamaRequest
	_ = json.Unmarshal(body, &req)

	f.mu.Lock()
	idx := len(f.requests)
	f.requests = append(f.requests, req)
	var reply OllamaReply
	if len(f.replies) > 0 {
		if idx >= len(f.replies) {
			idx = len(f.replies) - 1
		}
		reply = f.replies[idx]
	}
	f.mu.Unlock()

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}

	payload := reply.Body
	if payload == "" {
		payload = encodeHashtagsEnvelope(req.Model, reply.Hashtags)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, payload)
}

// encodeHashtagsEnvelope builds {"model":..,"response":"{\"hashtags\":[..]}","done":true}.
func encodeHashtagsEnvelope(model string, tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	inner, _ := json.Marshal(map[string][]string{"hashtags": tags})
	outer, _ := json.Marshal(map[string]any{
		"model":    model,
		"response": string(inner),
		"done":     true,
	})
	return string(outer)
}
