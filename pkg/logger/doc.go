// Package logger builds the slog loggers used across the module and keeps
// attribute keys consistent.
//
// New returns a *slog.Logger configured through Option functions: output
// format (text or json), minimum level, static attributes and
// ContextExtractor callbacks that copy request-scoped values from the
// context into every record.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "landing"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "in-app browser detected",
//	    logger.Browser("Instagram"),
//	    logger.Platform("ios"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
