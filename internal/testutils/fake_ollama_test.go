package testutils

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeOllama(t *testing.T) {
	fake := NewFakeOllama(t,
		HashtagsReply("#a", "b"),
		RawReply(http.StatusInternalServerError, `{"error":"model not loaded"}`),
	)

	resp, body := PostJSON(t, fake.Server, "/api/generate", `{"model":"gemma3:1b","prompt":"p","stream":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Model    string `json:"model"`
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "gemma3:1b", envelope.Model)
	assert.JSONEq(t, `{"hashtags":["#a","b"]}`, envelope.Response)

	for i := 0; i < 2; i++ {
		resp, body = PostJSON(t, fake.Server, "/api/generate", `{"model":"gemma3:1b"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"model not loaded"}`, string(body))
	}

	requests := fake.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, "p", requests[0].Prompt)
}

func TestFakeOllama_UnknownPath(t *testing.T) {
	fake := NewFakeOllama(t, HashtagsReply("#a"))

	resp, _ := PostJSON(t, fake.Server, "/api/chat", `{}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, fake.Requests())
}
