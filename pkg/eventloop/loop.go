package eventloop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/inappbrowser/pkg/logger"
)

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used to report panicking tasks.
func WithLogger(l *slog.Logger) Option {
	return func(loop *Loop) {
		if l != nil {
			loop.logger = l
		}
	}
}

// Loop executes posted tasks one at a time on the goroutine that calls Run.
// The queue is unbounded so tasks may post further tasks without blocking.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	timers  map[*time.Timer]struct{}
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
	running atomic.Bool
	closed  atomic.Bool
	logger  *slog.Logger
}

// New creates an idle loop. Call Run to start processing.
func New(opts ...Option) *Loop {
	l := &Loop{
		timers: make(map[*time.Timer]struct{}),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn. It reports false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	if l.closed.Load() {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	if fn == nil || l.closed.Load() {
		return
	}
	if d <= 0 {
		l.Post(fn)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed.Load() {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[t] = struct{}{}
}

// Run processes tasks until the context is canceled or Close is called.
// It returns ErrLoopClosed after Close and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	for {
		for {
			task, ok := l.next()
			if !ok {
				break
			}
			l.execute(task)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrLoopClosed
		case <-l.wake:
		}
	}
}

// Close stops the loop and every pending timer. Queued tasks are dropped.
// It is safe for repeated calls.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed.Store(true)
		for t := range l.timers {
			t.Stop()
		}
		l.timers = nil
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	})
}

// Pending returns the number of queued tasks and armed timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) + len(l.timers)
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 || l.closed.Load() {
		return nil, false
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task, true
}

// execute runs a task, keeping the loop alive if it panics.
func (l *Loop) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop task panicked",
				slog.Any("panic", r),
				logger.Component("eventloop"),
			)
		}
	}()
	task()
}
