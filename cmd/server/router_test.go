package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookscribs/scriptbuddy-api/internal/config"
	"github.com/bookscribs/scriptbuddy-api/internal/mocks"
	"github.com/bookscribs/scriptbuddy-api/internal/task"
)

// newTestApplication wires an application around in-memory collaborators,
// bypassing the external Gemini, SMTP, and database dependencies.
func newTestApplication(t *testing.T) (*application, *mocks.MockGenerator, *mocks.MockSender, *mocks.MockLeadStore) {
	t.Helper()

	gen := &mocks.MockGenerator{}
	sender := &mocks.MockSender{}
	leadStore := &mocks.MockLeadStore{}
	logger := slog.Default()

	factory, err := task.NewScriptGenerationTaskFactory(
		gen, sender, leadStore, "scripts@bookscribs.io", "admin@bookscribs.io", logger)
	require.NoError(t, err)

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, logger)
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:      8080,
				LogLevel:  "info",
				StaticDir: t.TempDir(),
			},
		},
		logger:      logger,
		leadStore:   leadStore,
		generator:   gen,
		sender:      sender,
		taskRunner:  runner,
		taskFactory: factory,
	}
	return app, gen, sender, leadStore
}

func TestRouter_HealthCheck(t *testing.T) {
	app, _, _, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRouter_RouteRegistration(t *testing.T) {
	app, _, _, _ := newTestApplication(t)
	router := app.setupRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/script"},
		{http.MethodGet, "/success"},
		{http.MethodGet, "/leads"},
		{http.MethodGet, "/leads/download"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, "%s %s", tc.method, tc.path)
	}
}

// TestRouter_SubmissionPipeline drives a submission through the full
// wired stack: router, handler, runner, task, and store.
func TestRouter_SubmissionPipeline(t *testing.T) {
	app, _, sender, leadStore := newTestApplication(t)
	router := app.setupRouter()

	form := url.Values{
		"email":      {"jane.doe@example.com"},
		"context":    {"A heist on a generation ship"},
		"max_length": {"200"},
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
	}
	req := httptest.NewRequest(http.MethodPost, "/script",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Success", body)

	require.Eventually(t, func() bool {
		return leadStore.CallCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, sender.CallCount())
	assert.Equal(t, "jane.doe@example.com", leadStore.Appended[0].Email)
}

func TestRouter_MissingFieldRejectedWithoutSideEffects(t *testing.T) {
	app, gen, sender, leadStore := newTestApplication(t)
	router := app.setupRouter()

	form := url.Values{
		"email":      {"jane.doe@example.com"},
		"max_length": {"200"},
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
	}
	req := httptest.NewRequest(http.MethodPost, "/script",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)

	// Give any stray task a moment to surface before asserting silence.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, gen.CallCount())
	assert.Equal(t, 0, sender.CallCount())
	assert.Equal(t, 0, leadStore.CallCount())
}
