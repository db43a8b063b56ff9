// Package analytics delivers in-app browser detection events.
//
// An Event carries a uuid, the configured event name, the detected browser
// and the raw user agent. Sinks implement Track:
//
//   - LogSink writes the event through slog.
//   - HTTPSink posts JSON to a collector with resty.
//   - RedisSink appends to a stream with XADD.
//   - MetricsSink increments a Prometheus counter.
//   - SinkFunc adapts a plain function.
//
// Multi combines sinks. Queue moves delivery to background workers so a
// slow collector never holds up the caller; close it on shutdown to flush
// buffered events. Delivery failures wrap ErrDeliveryFailed; callers
// decide whether to log or drop them.
package analytics
