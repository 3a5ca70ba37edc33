package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/hashtag-api/internal/api"
	"github.com/phrazzld/hashtag-api/internal/config"
	"github.com/phrazzld/hashtag-api/internal/mocks"
	"github.com/phrazzld/hashtag-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
		},
		Ollama: config.OllamaConfig{
			URL:   "http://localhost:11434",
			Burst: 1,
		},
		Generation: config.GenerationConfig{
			MaxRetries:      3,
			MaxHashtags:     30,
			DefaultModel:    "gemma3:270m",
			AvailableModels: []string{"gemma3:270m", "gemma3:1b"},
		},
	}
}

func TestNewApplication(t *testing.T) {
	log, _ := logger.NewTestLogger()

	app, err := newApplication(testConfig(), log)
	require.NoError(t, err)
	assert.NotNil(t, app.generator)
	assert.NotNil(t, app.hashtagService)
}

func TestNewApplication_InvalidOllamaURL(t *testing.T) {
	log, _ := logger.NewTestLogger()
	cfg := testConfig()
	cfg.Ollama.URL = "not a url"

	_, err := newApplication(cfg, log)
	assert.Error(t, err)
}

func TestNewApplication_InvalidLimits(t *testing.T) {
	log, _ := logger.NewTestLogger()
	cfg := testConfig()
	cfg.Generation.MaxRetries = 0

	_, err := newApplicationWithGenerator(cfg, log, &mocks.MockGenerator{})
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	log, _ := logger.NewTestLogger()
	gen := mocks.NewMockGeneratorWithBatches([]string{"#Go", "golang", "#go"})
	app, err := newApplicationWithGenerator(testConfig(), log, gen)
	require.NoError(t, err)
	router := app.setupRouter()

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("generate hashtags", func(t *testing.T) {
		body := bytes.NewBufferString(`{"text": "learning go", "count": 2}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hashtags", body))

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.GenerateHashtagsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"#go", "#golang"}, resp.Hashtags)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "gemma3:270m", resp.Model)
	})

	t.Run("validation error carries trace id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hashtags", bytes.NewBufferString(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, api.MsgEmptyText, resp["error"])
		assert.NotEmpty(t, resp["trace_id"])
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hashtags", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	log, _ := logger.NewTestLogger()
	app, err := newApplicationWithGenerator(testConfig(), log, &mocks.MockGenerator{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("variables are loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("HASHTAG_TEST_DOTENV=loaded\n"), 0o600))
		t.Setenv("HASHTAG_TEST_DOTENV", "")
		require.NoError(t, os.Unsetenv("HASHTAG_TEST_DOTENV"))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("HASHTAG_TEST_DOTENV"))
	})
}

func TestInitializeApp_ConfigFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	restore := slog.Default()
	t.Cleanup(func() { slog.SetDefault(restore) })

	t.Run("file named by environment is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hashtag.yaml")
		require.NoError(t, os.WriteFile(path, []byte("generation:\n  max_hashtags: 12\n"), 0o600))
		t.Setenv(configFileEnv, path)

		cfg, l, err := initializeApp(envPath)
		require.NoError(t, err)
		require.NotNil(t, l)
		assert.Equal(t, 12, cfg.Generation.MaxHashtags)
	})

	t.Run("missing named file is an error", func(t *testing.T) {
		t.Setenv(configFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

		cfg, l, err := initializeApp(envPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Nil(t, l)
	})

	t.Run("unset falls back to defaults", func(t *testing.T) {
		t.Setenv(configFileEnv, "")

		cfg, _, err := initializeApp(envPath)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultMaxHashtags, cfg.Generation.MaxHashtags)
	})
}
