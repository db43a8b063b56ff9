package analytics

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// StreamAdder is the part of a go-redis client used by RedisSink.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisSink appends events to a Redis stream.
type RedisSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewRedisSink writes to stream. maxLen > 0 caps the stream approximately.
func NewRedisSink(client StreamAdder, stream string, maxLen int64) *RedisSink {
	return &RedisSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisSink) Track(ctx context.Context, e Event) error {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":         e.ID,
			"event":      e.Name,
			"browser":    e.Browser,
			"user_agent": e.UserAgent,
			"timestamp":  e.Timestamp.UnixMilli(),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}
