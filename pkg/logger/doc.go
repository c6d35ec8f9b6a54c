// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers so every component logs the same keys.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "uploadd"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "file placed",
//		logger.UploadKey("avatar"),
//		logger.Path("uploads/me.png"),
//		logger.Size(48213),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally. Discard returns a logger that drops everything and is
// the default for library types that accept an optional logger.
package logger
