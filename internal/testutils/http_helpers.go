package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/hashtag-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
	})
	return server
}

// PostJSON sends body to server.URL+path and returns the response with its
// body fully read. The response body is closed before returning.
func PostJSON(t *testing.T, server *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err, "Failed to create request")
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Request failed")
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("Warning: failed to close response body: %v", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	return resp, data
}

// AssertErrorResponse checks that a response carries the expected status code
// and error message, plus a trace ID.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	body []byte,
	expectedStatus int,
	expectedMessage string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "Failed to unmarshal error response: %s", string(body))

	assert.Equal(t, expectedMessage, errResp.Error)
	assert.NotEmpty(t, errResp.TraceID, "Error responses should carry a trace ID")
}
