package eventloop

import "errors"

var (
	// ErrLoopClosed is returned by Run when the loop was closed before or while running
	ErrLoopClosed = errors.New("event loop closed")

	// ErrLoopRunning is returned when Run is called on a loop that is already running
	ErrLoopRunning = errors.New("event loop already running")
)
