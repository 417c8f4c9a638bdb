package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cmdinternal "github.com/vertiscale/vertiscalr/cmd/internal"
	"github.com/vertiscale/vertiscalr/internal"
	"github.com/vertiscale/vertiscalr/internal/tracing"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	platform, err := cmdinternal.DetectPlatform()
	if err != nil {
		logger.Error("could not detect platform", "error", err)
		os.Exit(1)
	}

	// Parse config at startup - fail fast on misconfiguration.
	var cfg internal.RuntimeConfig
	if err := cfg.Parse(platform); err != nil {
		logger.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	tp := tracing.InitTracer(ctx, logger, "vertiscalr", os.Stderr)
	defer func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}(context.Background())

	controller, err := cmdinternal.NewController(ctx, platform, &cfg, logger)
	if err != nil {
		logger.Error("could not build platform controller", "error", err)
		os.Exit(1)
	}

	if err := cmdinternal.Run(ctx, &cfg, controller, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
