package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cmdinternal "github.com/vertiscale/vertiscalr/cmd/internal"
	"github.com/vertiscale/vertiscalr/internal"
	"github.com/vertiscale/vertiscalr/internal/tracing"
)

// Local development entry point: the full service against the simulated
// controller, with a default token so a curl works out of the box.

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv("ALERT_TOKEN") == "" {
		os.Setenv("ALERT_TOKEN", "local-dev-token")
		logger.Warn("ALERT_TOKEN not set, using the local development default")
	}

	var cfg internal.RuntimeConfig
	if err := cfg.Parse(internal.PlatformSim); err != nil {
		logger.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	tp := tracing.InitTracer(ctx, logger, "vertiscalr-local", io.Discard)
	defer func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}(context.Background())

	smallest, err := cfg.Ladder.Flavor(0)
	if err != nil {
		logger.Error("could not resolve the smallest flavor", "error", err)
		os.Exit(1)
	}

	controller := internal.NewSimController(smallest.Name, 2*time.Second)

	if err := cmdinternal.Run(ctx, &cfg, controller, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
