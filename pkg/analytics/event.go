package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultEventName is emitted when no event name is configured.
const DefaultEventName = "in_app_browser_detected"

// Event is a single in-app browser detection.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"event"`
	Browser   string    `json:"browser"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps a detection with a fresh id and the current time.
func NewEvent(name, browser, userAgent string) Event {
	if name == "" {
		name = DefaultEventName
	}
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Browser:   browser,
		UserAgent: userAgent,
		Timestamp: time.Now().UTC(),
	}
}

// Properties returns the event payload as a flat map.
func (e Event) Properties() map[string]string {
	return map[string]string{
		"browser":    e.Browser,
		"user_agent": e.UserAgent,
	}
}

// Sink receives detection events.
type Sink interface {
	Track(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

func (f SinkFunc) Track(ctx context.Context, e Event) error {
	return f(ctx, e)
}
