package analytics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSink counts detections per event and browser.
type MetricsSink struct {
	detections *prometheus.CounterVec
}

// NewMetricsSink registers the inappbrowser_detections_total counter with reg.
// A nil reg uses the default registerer.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inappbrowser",
		Name:      "detections_total",
		Help:      "In-app browser detections by browser family.",
	}, []string{"event", "browser"})

	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, errors.Join(ErrRegisterMetric, err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, errors.Join(ErrRegisterMetric, err)
		}
		counter = existing
	}

	return &MetricsSink{detections: counter}, nil
}

func (s *MetricsSink) Track(_ context.Context, e Event) error {
	s.detections.WithLabelValues(e.Name, e.Browser).Inc()
	return nil
}

// Collector exposes the underlying counter.
func (s *MetricsSink) Collector() *prometheus.CounterVec {
	return s.detections
}
