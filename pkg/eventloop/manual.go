package eventloop

import (
	"sort"
	"sync"
	"time"
)

type manualTimer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// Manual is a virtual-time Scheduler. Callbacks only run from Advance, in
// due-time order with ties broken by scheduling order.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []manualTimer
}

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc schedules fn at now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.timers = append(m.timers, manualTimer{at: m.now + d, seq: m.seq, fn: fn})
}

// Advance moves virtual time forward by d and runs every callback that
// becomes due, including callbacks scheduled by those callbacks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		t, ok := m.popDue(target)
		if !ok {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// Flush runs everything due at the current virtual time.
func (m *Manual) Flush() { m.Advance(0) }

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks not yet run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) popDue(target time.Duration) (manualTimer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.timers) == 0 {
		return manualTimer{}, false
	}

	sort.Slice(m.timers, func(i, j int) bool {
		if m.timers[i].at == m.timers[j].at {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at < m.timers[j].at
	})

	next := m.timers[0]
	if next.at > target {
		return manualTimer{}, false
	}

	m.timers = m.timers[1:]
	if next.at > m.now {
		m.now = next.at
	}
	return next, true
}
