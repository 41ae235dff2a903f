package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookscribs/scriptbuddy-api/internal/api"
	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/mocks"
	"github.com/bookscribs/scriptbuddy-api/internal/task"
)

// stubFactory implements api.ScriptTaskFactory.
type stubFactory struct {
	mu       sync.Mutex
	requests []*domain.ScriptRequest
	createFn func(req *domain.ScriptRequest) (task.Task, error)
}

func (f *stubFactory) CreateTask(req *domain.ScriptRequest) (task.Task, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.createFn != nil {
		return f.createFn(req)
	}
	return &noopTask{}, nil
}

func (f *stubFactory) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// stubSubmitter implements api.TaskSubmitter.
type stubSubmitter struct {
	mu        sync.Mutex
	submitted []task.Task
	submitFn  func(ctx context.Context, t task.Task) error
}

func (s *stubSubmitter) Submit(ctx context.Context, t task.Task) error {
	if s.submitFn != nil {
		if err := s.submitFn(ctx, t); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.submitted = append(s.submitted, t)
	s.mu.Unlock()
	return nil
}

func (s *stubSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submitted)
}

type noopTask struct {
	id uuid.UUID
}

func (n *noopTask) ID() uuid.UUID { return n.id }

func (n *noopTask) Type() string { return "noop" }

func (n *noopTask) Payload() []byte { return nil }

func (n *noopTask) Status() task.TaskStatus { return task.TaskStatusPending }

func (n *noopTask) Execute(_ context.Context) error { return nil }

func validForm() url.Values {
	return url.Values{
		"email":      {"jane.doe@example.com"},
		"context":    {"A heist on a generation ship"},
		"max_length": {"200"},
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
	}
}

func postForm(handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/script",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestGenerateScript_Success(t *testing.T) {
	t.Parallel()

	factory := &stubFactory{}
	submitter := &stubSubmitter{}
	handler := api.NewScriptHandler(factory, submitter)

	rr := postForm(handler.GenerateScript, validForm())

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Success", body)

	require.Equal(t, 1, factory.callCount())
	req := factory.requests[0]
	assert.Equal(t, "jane.doe@example.com", req.Email)
	assert.Equal(t, 200, req.MaxLength)
	assert.Equal(t, 1, submitter.callCount())
}

func TestGenerateScript_MissingFieldFailsPrecondition(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"email", "context", "max_length", "first_name", "last_name"} {
		field := field
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			factory := &stubFactory{}
			submitter := &stubSubmitter{}
			handler := api.NewScriptHandler(factory, submitter)

			form := validForm()
			form.Del(field)
			rr := postForm(handler.GenerateScript, form)

			assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
			assert.Contains(t, rr.Body.String(), field)

			// A rejected submission must leave no trace: nothing
			// scheduled, nothing enqueued.
			assert.Equal(t, 0, factory.callCount())
			assert.Equal(t, 0, submitter.callCount())
		})
	}
}

func TestGenerateScript_InvalidMaxLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		maxLength string
	}{
		{name: "non-numeric", maxLength: "twelve"},
		{name: "zero", maxLength: "0"},
		{name: "negative", maxLength: "-5"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			factory := &stubFactory{}
			submitter := &stubSubmitter{}
			handler := api.NewScriptHandler(factory, submitter)

			form := validForm()
			form.Set("max_length", tc.maxLength)
			rr := postForm(handler.GenerateScript, form)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, 0, submitter.callCount())
		})
	}
}

func TestGenerateScript_QueueFull(t *testing.T) {
	t.Parallel()

	factory := &stubFactory{}
	submitter := &stubSubmitter{
		submitFn: func(_ context.Context, _ task.Task) error {
			return task.ErrQueueFull
		},
	}
	handler := api.NewScriptHandler(factory, submitter)

	rr := postForm(handler.GenerateScript, validForm())

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "busy")
}

// TestGenerateScript_RespondsBeforeGenerationCompletes wires the handler
// to a real runner and a deliberately slow generator, and checks that the
// acknowledgment does not wait for the pipeline.
func TestGenerateScript_RespondsBeforeGenerationCompletes(t *testing.T) {
	t.Parallel()

	const generationDelay = 300 * time.Millisecond

	generationDone := make(chan struct{})
	gen := &mocks.MockGenerator{
		GenerateScriptFn: func(ctx context.Context, _ string, _ int) (string, error) {
			select {
			case <-time.After(generationDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			close(generationDone)
			return "INT. CARGO BAY - NIGHT", nil
		},
	}
	sender := &mocks.MockSender{}
	leadStore := &mocks.MockLeadStore{}

	factory, err := task.NewScriptGenerationTaskFactory(
		gen, sender, leadStore, "scripts@bookscribs.io", "admin@bookscribs.io", nil)
	require.NoError(t, err)

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	handler := api.NewScriptHandler(factory, runner)

	start := time.Now()
	rr := postForm(handler.GenerateScript, validForm())
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Less(t, elapsed, generationDelay,
		"response must not wait for generation")

	// The pipeline still runs to completion in the background.
	select {
	case <-generationDone:
	case <-time.After(5 * time.Second):
		t.Fatal("generation never ran")
	}
	require.Eventually(t, func() bool {
		return leadStore.CallCount() == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, sender.CallCount())
}

func TestShowForm(t *testing.T) {
	t.Parallel()

	handler := api.NewScriptHandler(&stubFactory{}, &stubSubmitter{})

	req := httptest.NewRequest(http.MethodGet, "/script", nil)
	rr := httptest.NewRecorder()
	handler.ShowForm(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	for _, field := range []string{"email", "context", "max_length", "first_name", "last_name"} {
		assert.Contains(t, rr.Body.String(), `name="`+field+`"`)
	}
}

func TestShowSuccess(t *testing.T) {
	t.Parallel()

	handler := api.NewScriptHandler(&stubFactory{}, &stubSubmitter{})

	req := httptest.NewRequest(http.MethodGet, "/success", nil)
	rr := httptest.NewRecorder()
	handler.ShowSuccess(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Thank you")
}
