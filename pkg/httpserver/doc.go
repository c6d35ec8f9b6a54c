// Package httpserver runs an http.Server with graceful shutdown on context
// cancellation or SIGINT/SIGTERM.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Options panic on invalid values. HealthHandler provides liveness and
// readiness endpoints backed by dependency probes.
package httpserver
