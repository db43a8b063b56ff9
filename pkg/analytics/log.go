package analytics

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/inappbrowser/pkg/logger"
)

// LogSink writes events to a structured logger at info level.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(l *slog.Logger) *LogSink {
	if l == nil {
		l = slog.Default()
	}
	return &LogSink{log: l}
}

func (s *LogSink) Track(ctx context.Context, e Event) error {
	s.log.InfoContext(ctx, "analytics event",
		logger.Event(e.Name),
		logger.EventID(e.ID),
		logger.Browser(e.Browser),
		logger.UserAgent(e.UserAgent),
	)
	return nil
}
