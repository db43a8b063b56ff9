// Package httpserver runs the demo HTTP server with graceful shutdown and
// provides liveness and readiness handlers.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns when ctx is canceled and in-flight requests have finished or
// Config.ShutdownTimeout has elapsed. Start failures wrap ErrStart and
// shutdown failures wrap ErrShutdown.
package httpserver
