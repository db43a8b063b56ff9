// Package eventloop provides the single-threaded scheduling model the
// in-app browser flow runs on.
//
// Every callback of the flow (overlay display delay, Android fallback intent,
// dismiss-transition removal, user actions) is executed on one goroutine, so
// the overlay presence flag in the render tree never needs locking.
//
// Three Scheduler implementations are provided:
//
//   - Loop – a real event loop. Posted tasks and timer callbacks are executed
//     one at a time, in order, by the goroutine that calls Run.
//   - Manual – virtual time for tests. Nothing runs until Advance is called.
//   - Inline – runs callbacks synchronously and ignores delays. Used when the
//     overlay is rendered on the server.
//
// # Usage
//
//	loop := eventloop.New(eventloop.WithLogger(log))
//	go loop.Run(ctx)
//	defer loop.Close()
//
//	loop.AfterFunc(300*time.Millisecond, func() {
//	    // runs on the loop goroutine
//	})
//
// Scheduling is fire-and-forget: there is no cancellation token. A later
// action can make an earlier callback moot, and callbacks are expected to
// re-check the state they depend on.
package eventloop
