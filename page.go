package inappbrowser

import (
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/inappbrowser/pkg/overlay"
	"github.com/dmitrymomot/inappbrowser/pkg/redirect"
)

// ReadySignal fires at most once, when the page's structure is ready.
type ReadySignal struct {
	mu      sync.Mutex
	fired   bool
	waiters []func()
}

// NewReadySignal returns a signal that has not fired yet.
func NewReadySignal() *ReadySignal {
	return &ReadySignal{}
}

// AlreadyReady returns a signal that has already fired.
func AlreadyReady() *ReadySignal {
	return &ReadySignal{fired: true}
}

// Fire marks the page ready and runs the waiting callbacks in registration
// order on the calling goroutine. Only the first call has any effect.
func (s *ReadySignal) Fire() bool {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return false
	}
	s.fired = true
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, fn := range waiters {
		fn()
	}
	return true
}

// Ready reports whether the signal has fired.
func (s *ReadySignal) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// OnReady runs fn now if the signal has fired, otherwise when it fires.
func (s *ReadySignal) OnReady(fn func()) {
	s.mu.Lock()
	if !s.fired {
		s.waiters = append(s.waiters, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn()
}

// Page is the host page environment. Tree and Navigator may be nil; their
// absence turns the matching step into a no-op. A nil Ready means the page
// is already ready and a nil URL is treated as "/".
type Page struct {
	UserAgent string
	URL       *url.URL
	Ready     *ReadySignal
	Tree      overlay.RenderTree
	Navigator redirect.Navigator

	registered atomic.Bool
	once       sync.Once
	overlay    *overlay.Overlay
}

// Overlay returns the overlay presented on this page, or nil.
func (p *Page) Overlay() *overlay.Overlay {
	return p.overlay
}

func (p *Page) path() string {
	if p.URL == nil || p.URL.Path == "" {
		return "/"
	}
	return p.URL.Path
}

func (p *Page) location() *url.URL {
	if p.URL == nil {
		return &url.URL{Path: "/"}
	}
	return p.URL
}
