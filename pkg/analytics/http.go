package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPOption configures an HTTPSink.
type HTTPOption func(*HTTPSink)

// WithHeader sets a header sent with every event, e.g. an API key.
func WithHeader(key, value string) HTTPOption {
	return func(s *HTTPSink) {
		s.client.SetHeader(key, value)
	}
}

// WithTimeout bounds a single delivery.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSink) {
		if d > 0 {
			s.client.SetTimeout(d)
		}
	}
}

// WithRetries retries failed deliveries count times.
func WithRetries(count int, wait time.Duration) HTTPOption {
	return func(s *HTTPSink) {
		s.client.SetRetryCount(count).SetRetryWaitTime(wait)
	}
}

// HTTPSink posts each event as JSON to a collector endpoint.
type HTTPSink struct {
	client   *resty.Client
	endpoint string
}

func NewHTTPSink(endpoint string, opts ...HTTPOption) *HTTPSink {
	s := &HTTPSink{
		client: resty.New().
			SetTimeout(5*time.Second).
			SetHeader("Content-Type", "application/json"),
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type httpPayload struct {
	ID         string            `json:"id"`
	Event      string            `json:"event"`
	Properties map[string]string `json:"properties"`
	Timestamp  time.Time         `json:"timestamp"`
}

func (s *HTTPSink) Track(ctx context.Context, e Event) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(httpPayload{
			ID:         e.ID,
			Event:      e.Name,
			Properties: e.Properties(),
			Timestamp:  e.Timestamp,
		}).
		Post(s.endpoint)
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	if resp.IsError() {
		return errors.Join(ErrDeliveryFailed, fmt.Errorf("collector responded with status %d", resp.StatusCode()))
	}
	return nil
}
