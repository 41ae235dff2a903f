package task_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookscribs/scriptbuddy-api/internal/task"
)

// stubTask is a minimal Task whose Execute delegates to a function field.
type stubTask struct {
	id        uuid.UUID
	executeFn func(ctx context.Context) error
}

func newStubTask(executeFn func(ctx context.Context) error) *stubTask {
	return &stubTask{id: uuid.New(), executeFn: executeFn}
}

func (s *stubTask) ID() uuid.UUID { return s.id }

func (s *stubTask) Type() string { return "stub" }

func (s *stubTask) Payload() []byte { return nil }

func (s *stubTask) Status() task.TaskStatus { return task.TaskStatusPending }

func (s *stubTask) Execute(ctx context.Context) error {
	if s.executeFn != nil {
		return s.executeFn(ctx)
	}
	return nil
}

func TestTaskRunner_SubmitBeforeStart(t *testing.T) {
	t.Parallel()

	runner := task.NewTaskRunner(task.DefaultConfig(), nil)
	err := runner.Submit(context.Background(), newStubTask(nil))
	assert.ErrorIs(t, err, task.ErrRunnerStopped)
}

func TestTaskRunner_ExecutesSubmittedTasks(t *testing.T) {
	t.Parallel()

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 2, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	var executed atomic.Int32
	done := make(chan struct{})

	const n = 5
	for i := 0; i < n; i++ {
		err := runner.Submit(context.Background(), newStubTask(func(_ context.Context) error {
			if executed.Add(1) == n {
				close(done)
			}
			return nil
		}))
		require.NoError(t, err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("tasks not executed: got %d of %d", executed.Load(), n)
	}
}

func TestTaskRunner_RejectsWhenQueueFull(t *testing.T) {
	t.Parallel()

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)
	require.NoError(t, runner.Start())

	workerBusy := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	defer runner.Stop()

	// Occupy the single worker.
	require.NoError(t, runner.Submit(context.Background(), newStubTask(func(_ context.Context) error {
		close(workerBusy)
		<-release
		return nil
	})))
	<-workerBusy

	// Fill the single queue slot.
	require.NoError(t, runner.Submit(context.Background(), newStubTask(nil)))

	// The next submission has nowhere to go.
	err := runner.Submit(context.Background(), newStubTask(nil))
	assert.ErrorIs(t, err, task.ErrQueueFull)
}

func TestTaskRunner_StopDrainsQueue(t *testing.T) {
	t.Parallel()

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())

	var executed atomic.Int32
	for i := 0; i < 4; i++ {
		require.NoError(t, runner.Submit(context.Background(), newStubTask(func(_ context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	runner.Stop()
	assert.Equal(t, int32(4), executed.Load())
}

func TestTaskRunner_SubmitAfterStop(t *testing.T) {
	t.Parallel()

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)
	require.NoError(t, runner.Start())
	runner.Stop()

	err := runner.Submit(context.Background(), newStubTask(nil))
	assert.ErrorIs(t, err, task.ErrRunnerStopped)
}

func TestTaskRunner_FailedTaskDoesNotStopWorkers(t *testing.T) {
	t.Parallel()

	runner := task.NewTaskRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	done := make(chan struct{})
	require.NoError(t, runner.Submit(context.Background(), newStubTask(func(_ context.Context) error {
		return assert.AnError
	})))
	require.NoError(t, runner.Submit(context.Background(), newStubTask(func(_ context.Context) error {
		close(done)
		return nil
	})))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a failing task")
	}
}
