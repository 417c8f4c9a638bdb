package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// errPollTimeout marks a resize that did not converge within the poll
// deadline. It is retried like any other transient failure.
var errPollTimeout = errors.New("resize did not reach a terminal state before the poll deadline")

// Resizer executes a resize against a VMController: it short-circuits
// when the VM is already on the target flavor, retries transient failures
// with exponential backoff up to a fixed ceiling, and bounds the
// post-request status polling. Rejections are surfaced immediately.
//
// The Resizer never touches the ResourceStore; the control loop owns all
// state transitions.
type Resizer struct {
	controller VMController
	logger     *slog.Logger
	tracer     trace.Tracer

	maxAttempts  int
	backoffBase  time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration

	// sleep is replaceable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewResizer(controller VMController, cfg RuntimeConfig, tracer trace.Tracer, logger *slog.Logger) *Resizer {
	return &Resizer{
		controller:   controller,
		logger:       logger,
		tracer:       tracer,
		maxAttempts:  cfg.MaxRetryAttempts,
		backoffBase:  cfg.BackoffBase,
		pollInterval: cfg.ResizePollInterval,
		pollTimeout:  cfg.ResizePollTimeout,
		sleep:        sleepCtx,
	}
}

// Resize drives the VM to the target flavor. A nil return means the VM is
// on the target flavor; a *RejectedError means the platform refused; any
// other error means the retry budget ran out on transient failures.
func (r *Resizer) Resize(ctx context.Context, vmID, flavor string) (err error) {
	ctx, span := r.tracer.Start(ctx, "resize.execute")
	defer span.End()

	span.SetAttributes(
		attribute.String("vm_id", vmID),
		attribute.String("target_flavor", flavor),
	)

	logger := r.logger.With("vm_id", vmID, "target_flavor", flavor)

	// A crash between a completed resize and the state update must not
	// re-drive the same operation, so check what the platform already
	// has before issuing anything.
	current, err := r.controller.GetFlavor(ctx, vmID)
	if err != nil {
		return fmt.Errorf("could not read current flavor: %w", err)
	}

	if current == flavor {
		logger.Info("VM already on the target flavor, nothing to do")
		span.SetAttributes(attribute.Bool("noop", true))

		return nil
	}

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := r.backoffBase << (attempt - 1)
			logger.With("attempt", attempt, "backoff", backoff).Info("retrying resize after transient failure")

			if err := r.sleep(ctx, backoff); err != nil {
				return err
			}
		}

		err = r.attempt(ctx, vmID, flavor)
		if err == nil {
			return nil
		}

		var rejected *RejectedError
		if errors.As(err, &rejected) {
			logger.Warn("resize rejected by the platform", "reason", rejected.Reason)
			return err
		}

		logger.Warn("resize attempt failed", "error", err)
	}

	return fmt.Errorf("resize failed after %d attempts: %w", r.maxAttempts, err)
}

func (r *Resizer) attempt(ctx context.Context, vmID, flavor string) error {
	ctx, span := r.tracer.Start(ctx, "resize.attempt")
	defer span.End()

	if err := r.controller.RequestResize(ctx, vmID, flavor); err != nil {
		return fmt.Errorf("could not request resize: %w", err)
	}

	return r.awaitConvergence(ctx, vmID, flavor)
}

// awaitConvergence polls the resize status until it is terminal or the
// poll deadline passes. The deadline is treated as a transient failure so
// that the attempt loop above decides whether to give up.
func (r *Resizer) awaitConvergence(ctx context.Context, vmID, flavor string) error {
	ctx, span := r.tracer.Start(ctx, "resize.poll")
	defer span.End()

	deadline := time.Now().Add(r.pollTimeout)

	for {
		state, err := r.controller.ResizeStatus(ctx, vmID, flavor)
		if err != nil {
			return fmt.Errorf("could not poll resize status: %w", err)
		}

		switch state {
		case ResizeStateCompleted:
			return nil
		case ResizeStateFailed:
			return &RejectedError{Reason: "platform reported the resize as failed"}
		}

		if time.Now().After(deadline) {
			return &TransientError{Err: errPollTimeout}
		}

		if err := r.sleep(ctx, r.pollInterval); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
