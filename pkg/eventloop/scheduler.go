package eventloop

import "time"

// Scheduler defers callbacks. A zero or negative delay means the next
// available slot, which is not necessarily synchronous.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func())

// AfterFunc calls f(d, fn).
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) { f(d, fn) }

// Inline runs every callback immediately on the caller's goroutine.
type Inline struct{}

// AfterFunc runs fn right away, ignoring d.
func (Inline) AfterFunc(_ time.Duration, fn func()) {
	if fn != nil {
		fn()
	}
}
