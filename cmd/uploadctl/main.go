// Command uploadctl applies the upload rules to local files.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/dmitrymomot/uploadslot/internal/cli"
	"github.com/dmitrymomot/uploadslot/pkg/logger"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("UPLOADCTL_DEBUG") != "" {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(level),
	)

	if err := cli.NewRootCommand(context.Background(), afero.NewOsFs(), os.Stdout, log).Execute(); err != nil {
		os.Exit(1)
	}
}
