package analytics

import "errors"

var (
	ErrDeliveryFailed = errors.New("analytics event delivery failed")
	ErrRegisterMetric = errors.New("failed to register analytics metric")

	// ErrQueueFull is returned by Queue.Track when the buffer has no room
	ErrQueueFull   = errors.New("analytics queue is full")
	ErrQueueClosed = errors.New("analytics queue is closed")
)
