// Package queue runs background jobs for the store: Telegram notifications
// and payment-proof processing. Jobs are enqueued after the triggering
// transaction commits and executed at-least-once by worker goroutines with
// exponential backoff between attempts, so a flaky webhook never slows down
// or fails an order request.
//
//	// Define a job
//	type OrderNotificationJob struct { OrderID uint }
//	func (j OrderNotificationJob) Handle() error { ... }
//	func (j OrderNotificationJob) MaxAttempts() int { return 5 }
//
//	// Dispatch (post-commit only)
//	queue.Dispatch(OrderNotificationJob{OrderID: order.ID})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/logger"
)

// Job is the interface every queued job must satisfy.
type Job interface {
	// Handle executes the job. Return a non-nil error to signal failure.
	Handle() error
}

// Retryable jobs override the default attempt cap. Notification jobs use 5,
// the proof-processing placeholder uses 3.
type Retryable interface {
	MaxAttempts() int
}

// FailedJob holds information about a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// Manager is the central queue hub.
type Manager struct {
	mu          sync.RWMutex
	driver      Driver
	registry    map[string]func() Job // type name → constructor
	failed      []FailedJob
	maxAttempts int           // default cap for jobs that are not Retryable
	baseBackoff time.Duration // first retry delay; doubles per attempt
	maxBackoff  time.Duration // delay ceiling
}

var defaultManager = &Manager{
	registry:    map[string]func() Job{},
	maxAttempts: 3,
	baseBackoff: time.Second,
	maxBackoff:  60 * time.Second,
	driver:      NewMemoryDriver(),
}

// SetDriver swaps the underlying queue driver (e.g. Redis).
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetDefaultMaxAttempts sets the attempt cap for jobs that do not implement
// Retryable.
func SetDefaultMaxAttempts(n int) { defaultManager.maxAttempts = n }

// SetBackoff tunes the retry delay curve. Mostly useful in tests.
func SetBackoff(base, max time.Duration) {
	defaultManager.baseBackoff = base
	defaultManager.maxBackoff = max
}

// Register makes a job type available for deserialization by name.
// Call this once at boot for every job type you define.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatch pushes job onto the queue immediately. A push failure is the
// caller's signal that the side effect was lost; order creation logs it and
// carries on, it never rolls back.
func Dispatch(job Job) error {
	return defaultManager.push(job)
}

func (m *Manager) push(job Job) error {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}

	env, err := json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()

	return d.Push(env)
}

// StartWorkers launches n concurrent workers that process jobs from the
// queue. The workers run until ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			m.mu.RLock()
			d := m.driver
			m.mu.RUnlock()

			raw, err := d.Pop(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if raw == nil {
				continue
			}

			m.process(raw)
		}
	}
}

func (m *Manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	m.runWithRetry(job, env.Type)
}

func (m *Manager) attemptsFor(job Job) int {
	if r, ok := job.(Retryable); ok && r.MaxAttempts() > 0 {
		return r.MaxAttempts()
	}
	return m.maxAttempts
}

// backoffFor returns the delay before the next attempt: base doubled per
// completed attempt, capped at maxBackoff.
func (m *Manager) backoffFor(attempt int) time.Duration {
	d := m.baseBackoff << (attempt - 1)
	if d > m.maxBackoff || d <= 0 {
		return m.maxBackoff
	}
	return d
}

func (m *Manager) runWithRetry(job Job, typeName string) {
	max := m.attemptsFor(job)

	var lastErr error
	for attempt := 1; attempt <= max; attempt++ {
		if err := job.Handle(); err != nil {
			lastErr = err
			if attempt < max {
				delay := m.backoffFor(attempt)
				logger.Warn("queue: job failed, retrying",
					"type", typeName, "attempt", attempt, "backoff", delay.String(), "error", err)
				time.Sleep(delay)
			}
			continue
		}
		logger.Info("queue: job processed", "type", typeName, "attempt", attempt)
		return
	}

	m.persistFailed(job, typeName, lastErr, max)
	logger.Error("queue: job exhausted retries", "type", typeName, "attempts", max, "error", lastErr)
}

// FailedJobs returns a snapshot of all failed jobs.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
