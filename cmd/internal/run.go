package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/vertiscale/vertiscalr/internal"
)

// DetectPlatform reads the PLATFORM environment variable. Unset means
// simulation mode, which needs no cloud credentials.
func DetectPlatform() (internal.Platform, error) {
	switch value := os.Getenv("PLATFORM"); value {
	case "", string(internal.PlatformSim):
		return internal.PlatformSim, nil
	case string(internal.PlatformAWS):
		return internal.PlatformAWS, nil
	case string(internal.PlatformAzure):
		return internal.PlatformAzure, nil
	case string(internal.PlatformGCP):
		return internal.PlatformGCP, nil
	default:
		return "", fmt.Errorf("unknown PLATFORM %q, expected aws, azure, gcp or sim", value)
	}
}

// NewController builds the VMController for the platform. Constructors may
// also resolve the alert token secret into the config.
func NewController(ctx context.Context, platform internal.Platform, cfg *internal.RuntimeConfig, logger *slog.Logger) (internal.VMController, error) {
	switch platform {
	case internal.PlatformAWS:
		logger.Info("using the AWS EC2 controller", "region", cfg.AWSRegion)
		return internal.NewAWSController(ctx, cfg)
	case internal.PlatformAzure:
		logger.Info("using the Azure VM controller", "resource_group", cfg.AzureResourceGroup)
		return internal.NewAzureController(ctx, cfg)
	case internal.PlatformGCP:
		logger.Info("using the GCP Compute controller", "project", cfg.GCPProject, "zone", cfg.GCPZone)
		return internal.NewGCPController(ctx, cfg)
	case internal.PlatformSim:
		logger.Info("using the simulated controller, no cloud calls will be made")

		smallest, err := cfg.Ladder.Flavor(0)
		if err != nil {
			return nil, err
		}

		return internal.NewSimController(smallest.Name, 2*time.Second), nil
	default:
		return nil, fmt.Errorf("no controller for platform %q", platform)
	}
}

// Run wires the full service together and blocks until the context is
// cancelled or a component fails. On the way out it drains in-flight
// resizes and writes a final state snapshot.
func Run(ctx context.Context, cfg *internal.RuntimeConfig, controller internal.VMController, logger *slog.Logger) error {
	store := internal.NewResourceStore(cfg.HistoryWindow)

	if cfg.SnapshotPath != "" {
		if err := store.LoadFromFile(cfg.SnapshotPath); err != nil {
			return fmt.Errorf("could not restore state snapshot: %w", err)
		}
	}

	hub := internal.NewHub(logger)
	stats := internal.NewStats()
	validator := internal.NewAlertValidator(cfg.AlertToken, cfg.ClockSkew, cfg.ReplayWindow, logger)
	resizer := internal.NewResizer(controller, *cfg, otel.Tracer("github.com/vertiscale/vertiscalr/internal/resizer"), logger)
	scaler := internal.NewScaler(store, cfg.Ladder, controller, resizer, hub, stats, *cfg, logger)
	server := internal.NewServer(validator, scaler, store, stats, hub, *cfg, logger)

	httpServer := &http.Server{
		Addr:        cfg.ListenAddress,
		Handler:     server.Handler(),
		ReadTimeout: 30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("listening", "address", cfg.ListenAddress)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	group.Go(func() error {
		ticker := time.NewTicker(cfg.LeaseReapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				scaler.ReapLeases(cfg.LeaseMaxAge)
			}
		}
	})

	if cfg.SnapshotPath != "" {
		group.Go(func() error {
			ticker := time.NewTicker(cfg.SnapshotInterval)
			defer ticker.Stop()

			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if err := store.SaveToFile(cfg.SnapshotPath); err != nil {
						logger.Error("could not write state snapshot", "error", err)
					}
				}
			}
		})
	}

	err := group.Wait()

	// Let running resizes finish before the final snapshot so their
	// outcome is captured.
	hub.Close()
	scaler.Wait()

	if cfg.SnapshotPath != "" {
		if snapErr := store.SaveToFile(cfg.SnapshotPath); snapErr != nil {
			logger.Error("could not write final state snapshot", "error", snapErr)
		}
	}

	return err
}
