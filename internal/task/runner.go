package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrQueueFull is returned by Submit when the task queue has no capacity
// left. Callers translate it into backpressure (the API responds 503).
var ErrQueueFull = errors.New("task queue is full")

// ErrRunnerStopped is returned by Submit after Stop has been called.
var ErrRunnerStopped = errors.New("task runner is stopped")

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount is the number of concurrent workers processing tasks
	WorkerCount int

	// QueueSize is the buffer size of the task queue; submissions beyond
	// this bound are rejected rather than blocking the caller
	QueueSize int

	// ShutdownTimeout is the maximum time to wait for in-flight tasks
	// to finish during Stop
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default configuration for the task runner
func DefaultConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:     2,
		QueueSize:       100,
		ShutdownTimeout: 30 * time.Second,
	}
}

// TaskRunner manages a pool of workers that process tasks from a bounded
// queue. Tasks are held only in memory; a crash loses whatever was queued
// or in flight.
type TaskRunner struct {
	taskChan chan Task
	config   RunnerConfig
	logger   *slog.Logger
	wg       sync.WaitGroup

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
}

// NewTaskRunner creates a new TaskRunner with the given configuration.
// If logger is nil, the default logger is used.
func NewTaskRunner(config RunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultConfig().WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskRunner{
		taskChan: make(chan Task, config.QueueSize),
		config:   config,
		logger:   logger.With(slog.String("component", "task_runner")),
	}
}

// Start launches the worker pool. It must be called before Submit.
func (r *TaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return errors.New("task runner already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i)
	}

	r.logger.Info("task runner started",
		slog.Int("worker_count", r.config.WorkerCount),
		slog.Int("queue_size", r.config.QueueSize))
	return nil
}

// Submit enqueues a task for background processing. It never blocks: if
// the queue is at capacity it returns ErrQueueFull immediately.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	r.mu.Lock()
	if r.stopped || r.cancel == nil {
		r.mu.Unlock()
		return ErrRunnerStopped
	}
	r.mu.Unlock()

	select {
	case r.taskChan <- task:
		r.logger.Debug("task submitted",
			slog.String("task_id", task.ID().String()),
			slog.String("task_type", task.Type()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		r.logger.Warn("task queue full, rejecting submission",
			slog.String("task_type", task.Type()),
			slog.Int("queue_size", r.config.QueueSize))
		return ErrQueueFull
	}
}

// Stop shuts the runner down, waiting up to ShutdownTimeout for workers
// to drain the queue and finish in-flight tasks.
func (r *TaskRunner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	cancel := r.cancel
	r.mu.Unlock()

	close(r.taskChan)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("task runner stopped cleanly")
	case <-time.After(r.config.ShutdownTimeout):
		r.logger.Warn("task runner shutdown timed out, abandoning in-flight tasks",
			slog.Duration("timeout", r.config.ShutdownTimeout))
	}

	if cancel != nil {
		cancel()
	}
}

// worker drains the task queue until it is closed and empty.
func (r *TaskRunner) worker(ctx context.Context, id int) {
	defer r.wg.Done()

	log := r.logger.With(slog.Int("worker_id", id))
	log.Debug("worker started")

	for task := range r.taskChan {
		r.processTask(ctx, log, task)
	}

	log.Debug("worker exiting, queue closed")
}

func (r *TaskRunner) processTask(ctx context.Context, log *slog.Logger, task Task) {
	log = log.With(
		slog.String("task_id", task.ID().String()),
		slog.String("task_type", task.Type()))

	log.Info("processing task")
	start := time.Now()

	if err := task.Execute(ctx); err != nil {
		log.Error("task execution failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return
	}

	log.Info("task completed",
		slog.Duration("duration", time.Since(start)))
}
