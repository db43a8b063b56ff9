package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/inappbrowser/pkg/logger"
)

const (
	DefaultQueueSize       = 256
	DefaultDeliveryTimeout = 5 * time.Second
)

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueSize sets how many events may wait for delivery. Minimum 1.
func WithQueueSize(n int) QueueOption {
	return func(q *Queue) { q.size = max(n, 1) }
}

// WithWorkers sets the number of delivery goroutines. Minimum 1.
func WithWorkers(n int) QueueOption {
	return func(q *Queue) { q.workers = max(n, 1) }
}

// WithDeliveryTimeout bounds a single delivery to the wrapped sink.
func WithDeliveryTimeout(d time.Duration) QueueOption {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithQueueLogger sets the logger for failed deliveries.
func WithQueueLogger(l *slog.Logger) QueueOption {
	return func(q *Queue) {
		if l != nil {
			q.log = l
		}
	}
}

// Queue hands events to a sink from background workers, so Track returns
// without waiting on the network. When the buffer is full the event is
// dropped and Track reports ErrQueueFull.
//
// Deliveries run on their own context bounded by the delivery timeout; the
// caller's context only has to live until Track returns.
type Queue struct {
	next    Sink
	events  chan Event
	size    int
	workers int
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewQueue starts the workers delivering to next.
func NewQueue(next Sink, opts ...QueueOption) *Queue {
	if next == nil {
		next = Multi()
	}
	q := &Queue{
		next:    next,
		size:    DefaultQueueSize,
		workers: 1,
		timeout: DefaultDeliveryTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}

	q.events = make(chan Event, q.size)
	q.wg.Add(q.workers)
	for range q.workers {
		go q.work()
	}
	return q
}

// Track enqueues the event without blocking.
func (q *Queue) Track(_ context.Context, e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.events <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits until the buffered ones are
// delivered or ctx ends.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) work() {
	defer q.wg.Done()
	for e := range q.events {
		q.deliver(e)
	}
}

func (q *Queue) deliver(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	start := time.Now()
	if err := q.next.Track(ctx, e); err != nil {
		q.log.WarnContext(ctx, "analytics event dropped",
			logger.Error(err),
			logger.Event(e.Name),
			logger.EventID(e.ID),
			logger.Duration(time.Since(start)),
			logger.Component("analytics"),
		)
	}
}
