package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/hashtag-api/internal/api/shared"
	"github.com/phrazzld/hashtag-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	base, buf := logger.NewTestLogger()

	var gotTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/hashtags", nil)
	w := httptest.NewRecorder()
	Trace(base)(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, gotTraceID)
	_, err := uuid.Parse(gotTraceID)
	assert.NoError(t, err)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, gotTraceID, entry["trace_id"])
	}
	assert.Equal(t, []string{"request started", "inside handler", "request finished"}, buf.Messages())
}

func TestTrace_DistinctIDsPerRequest(t *testing.T) {
	base, _ := logger.NewTestLogger()

	var ids []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, shared.GetTraceID(r.Context()))
	})
	handler := Trace(base)(next)

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestTrace_NilLogger(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.NotNil(t, logger.FromContextOrDefault(r.Context(), nil))
	})

	Trace(nil)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
