package queue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/metrics"
)

const (
	// DefaultMinGap keeps dispatch at or under 20 requests per second.
	DefaultMinGap = 50 * time.Millisecond
	// DefaultCooldown is how long dispatch pauses after a rate-limit error.
	DefaultCooldown = 2 * time.Second
)

// Result is the outcome of a queued operation.
type Result struct {
	Value any
	Err   error
}

type operation struct {
	ctx  context.Context
	run  func(ctx context.Context) (any, error)
	done chan Result
}

// Queue serializes all reads against the remote ledger. Operations are
// dispatched strictly in FIFO order, one at a time, with a minimum gap
// between dispatches. When an operation fails with a rate-limit error the
// queue pauses for a cooldown window before dispatching the next one; the
// failing operation itself is not retried, its error is delivered as-is.
//
// The queue never drops an enqueued operation. It is a process-lifetime
// singleton: there is no shutdown.
type Queue struct {
	minGap   time.Duration
	cooldown time.Duration

	mu   sync.Mutex
	ops  []*operation
	wake chan struct{}
}

// New creates a queue and starts its dispatch loop. Zero durations fall
// back to the defaults.
func New(minGap, cooldown time.Duration) *Queue {
	if minGap <= 0 {
		minGap = DefaultMinGap
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	q := &Queue{
		minGap:   minGap,
		cooldown: cooldown,
		wake:     make(chan struct{}, 1),
	}
	go q.dispatch()
	return q
}

// Enqueue adds an operation and returns a channel that receives exactly
// one Result when the operation completes. The channel is buffered, so a
// caller that stops waiting (scan timeout) does not block the queue; the
// operation still runs to completion.
func (q *Queue) Enqueue(ctx context.Context, run func(ctx context.Context) (any, error)) <-chan Result {
	op := &operation{ctx: ctx, run: run, done: make(chan Result, 1)}

	q.mu.Lock()
	q.ops = append(q.ops, op)
	depth := len(q.ops)
	q.mu.Unlock()

	metrics.Get().QueueDepth.Set(float64(depth))
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return op.done
}

// Do enqueues op and blocks until it has run, returning its typed result.
func Do[T any](ctx context.Context, q *Queue, op func(ctx context.Context) (T, error)) (T, error) {
	done := q.Enqueue(ctx, func(ctx context.Context) (any, error) {
		return op(ctx)
	})
	res := <-done
	if res.Err != nil {
		var zero T
		return zero, res.Err
	}
	return res.Value.(T), nil
}

func (q *Queue) dispatch() {
	var lastDispatch time.Time

	for {
		op := q.pop()
		if op == nil {
			<-q.wake
			continue
		}

		if wait := q.minGap - time.Since(lastDispatch); wait > 0 {
			time.Sleep(wait)
		}
		lastDispatch = time.Now()

		value, err := op.run(op.ctx)
		op.done <- Result{Value: value, Err: err}

		if errors.IsCode(err, errors.ErrRateLimited) {
			metrics.Get().QueueCooldowns.Inc()
			logger.Log.Warn("Ledger rate limit hit, pausing request queue",
				zap.Duration("cooldown", q.cooldown),
			)
			time.Sleep(q.cooldown)
		}
	}
}

func (q *Queue) pop() *operation {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ops) == 0 {
		metrics.Get().QueueDepth.Set(0)
		return nil
	}
	op := q.ops[0]
	q.ops = q.ops[1:]
	metrics.Get().QueueDepth.Set(float64(len(q.ops)))
	return op
}
