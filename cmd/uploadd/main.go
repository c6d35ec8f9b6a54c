// Command uploadd serves multipart uploads: every file posted to
// /uploads/{key} is validated and placed under the configured directory.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/uploadslot/pkg/config"
	"github.com/dmitrymomot/uploadslot/pkg/file"
	"github.com/dmitrymomot/uploadslot/pkg/httpserver"
	"github.com/dmitrymomot/uploadslot/pkg/logger"
	"github.com/dmitrymomot/uploadslot/pkg/redis"
	"github.com/dmitrymomot/uploadslot/pkg/spool"
	"github.com/dmitrymomot/uploadslot/pkg/upload"
	"github.com/dmitrymomot/uploadslot/pkg/uploadhttp"
)

type settings struct {
	Log    logger.Config
	Server httpserver.Config
	Spool  spool.Config
	Upload upload.Config
	Redis  redis.Config
	S3     file.S3Config
}

func main() {
	var cfg settings
	config.MustLoad(&cfg)

	logOpts, err := cfg.Log.Options()
	log := logger.New(append(logOpts, logger.WithContextValue("request_id", middleware.RequestIDKey))...)
	if err != nil {
		log.Warn("invalid log level, using environment default", logger.Error(err))
	}
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("uploadd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg settings, log *slog.Logger) error {
	var (
		registry spool.Registry = spool.NewMemoryRegistry()
		ready    []httpserver.HealthCheck
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		registry = spool.NewRedisRegistry(client, cfg.Spool.RedisOptions()...)
		ready = append(ready, redis.Healthcheck(client))
		log.Info("spool registry backed by redis")
	}

	sp := spool.New(nil, registry, append(cfg.Spool.Options(), spool.WithLogger(log))...)

	handlerOpts := []uploadhttp.Option{uploadhttp.WithLogger(log)}
	if cfg.S3.Bucket != "" {
		mirror, err := file.NewS3Mirror(ctx, cfg.S3, file.WithS3UploadTimeout(cfg.S3.Timeout))
		if err != nil {
			return err
		}
		handlerOpts = append(handlerOpts, uploadhttp.WithReplicator(mirror))
		log.Info("placed files are mirrored to s3", slog.String("bucket", cfg.S3.Bucket))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Get("/health/live", httpserver.HealthHandler(log))
	r.Get("/health/ready", httpserver.HealthHandler(log, ready...))
	r.Mount("/uploads", uploadhttp.NewHandler(sp, cfg.Upload, handlerOpts...).Routes())

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
