// Package queue runs moderation jobs asynchronously on a bounded worker
// pool, retrying failed jobs on a fixed backoff schedule.
package queue

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBackoff is the delay before retrying a failed attempt, indexed by
// the attempt number that just failed. The schedule is an explicit list, not
// a formula: 1 minute, then 3, then 5.
var DefaultBackoff = []time.Duration{60 * time.Second, 180 * time.Second, 300 * time.Second}

// DefaultMaxAttempts is the total number of attempts before a job is
// reported as permanently failed.
const DefaultMaxAttempts = 3

// Handler processes one comment. A non-nil error marks the attempt as failed
// and eligible for retry.
type Handler func(ctx context.Context, commentID string) error

// Options configures a Queue. Zero values fall back to defaults.
type Options struct {
	Workers     int
	MaxAttempts int
	Backoff     []time.Duration
}

type job struct {
	commentID string
	attempt   int
}

// Queue dispatches jobs to a bounded pool of workers. Enqueue never blocks
// the caller for longer than a channel send; retries are re-enqueued by
// timers so workers are not held hostage by backoff waits.
type Queue struct {
	handler     Handler
	maxAttempts int
	backoff     []time.Duration
	log         zerolog.Logger

	jobs chan job
	// Semaphore: buffered channel bounding concurrent handler goroutines
	sem chan struct{}
	wg  sync.WaitGroup

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a Queue with a worker pool sized for I/O-bound work
func New(handler Handler, opts Options, log zerolog.Logger) *Queue {
	workers := opts.Workers
	if workers <= 0 {
		// Moderation is I/O-bound (database round trips), so allow more
		// workers than cores, capped to keep connection usage sane.
		workers = runtime.NumCPU() * 4
		if workers < 4 {
			workers = 4
		}
		if workers > 32 {
			workers = 32
		}
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	backoff := opts.Backoff
	if backoff == nil {
		backoff = DefaultBackoff
	}

	return &Queue{
		handler:     handler,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		log:         log.With().Str("component", "queue").Logger(),
		jobs:        make(chan job, 256),
		sem:         make(chan struct{}, workers),
	}
}

// Enqueue schedules a first moderation attempt for the comment. It is safe
// to call from request handlers; the job runs on the queue's workers.
func (q *Queue) Enqueue(commentID string) {
	q.dispatch(job{commentID: commentID, attempt: 1})
}

// Start runs the dispatch loop until ctx is cancelled or Stop is called.
// It blocks; run it on its own goroutine.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.ctx, q.cancel = context.WithCancel(ctx)
	q.mu.Unlock()

	q.log.Info().Int("workers", cap(q.sem)).Msg("Moderation queue started")

	for {
		select {
		case <-q.ctx.Done():
			q.log.Info().Msg("Moderation queue stopping")
			return
		case j := <-q.jobs:
			select {
			case q.sem <- struct{}{}:
			case <-q.ctx.Done():
				return
			}

			q.wg.Add(1)
			go q.run(q.ctx, j)
		}
	}
}

// Stop cancels the dispatch loop and waits for in-flight jobs to finish.
// Jobs waiting on a retry timer are dropped.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running {
		return
	}

	q.cancel()
	q.wg.Wait()
	q.running = false
	q.log.Info().Msg("Moderation queue stopped")
}

// run executes one attempt and schedules a retry or reports permanent
// failure on error.
func (q *Queue) run(ctx context.Context, j job) {
	defer q.wg.Done()
	defer func() { <-q.sem }()
	defer func() {
		if r := recover(); r != nil {
			q.log.Error().
				Interface("panic", r).
				Str("comment_id", j.commentID).
				Msg("Moderation job panicked - recovered")
			q.retry(j)
		}
	}()

	if err := q.handler(ctx, j.commentID); err != nil {
		q.log.Warn().
			Err(err).
			Str("comment_id", j.commentID).
			Int("attempt", j.attempt).
			Msg("Moderation attempt failed")
		q.retry(j)
	}
}

// retry re-enqueues the job after the backoff delay for the attempt that
// just failed, or reports permanent failure once attempts are exhausted.
func (q *Queue) retry(j job) {
	if j.attempt >= q.maxAttempts {
		q.log.Error().
			Str("comment_id", j.commentID).
			Int("attempts", j.attempt).
			Msg("Moderation job permanently failed, comment stays pending")
		return
	}

	delay := q.backoff[len(q.backoff)-1]
	if j.attempt-1 < len(q.backoff) {
		delay = q.backoff[j.attempt-1]
	}

	next := job{commentID: j.commentID, attempt: j.attempt + 1}
	time.AfterFunc(delay, func() {
		q.dispatch(next)
	})
}

// dispatch hands a job to the loop, dropping it if the queue has stopped or
// the buffer is full.
func (q *Queue) dispatch(j job) {
	q.mu.Lock()
	ctx := q.ctx
	q.mu.Unlock()

	if ctx != nil && ctx.Err() != nil {
		return
	}

	select {
	case q.jobs <- j:
	default:
		q.log.Error().
			Str("comment_id", j.commentID).
			Msg("Moderation queue full, dropping job")
	}
}
