package internal

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ResizeExecutor abstracts the Resizer so the control loop can be tested
// without a cloud behind it.
//
//go:generate mockery --output ./ --name ResizeExecutor --filename mock_executor_test.go --outpkg internal_test
type ResizeExecutor interface {
	Resize(ctx context.Context, vmID, flavor string) error
}

// Scaler is the control loop: for each validated alert it records the
// sample, asks the policy for a decision, serializes execution through
// the store's lease and drives the resize, finally publishing exactly one
// ScalingEvent per decided action.
type Scaler struct {
	store      *ResourceStore
	ladder     FlavorLadder
	controller VMController
	resizer    ResizeExecutor
	publisher  Publisher
	stats      *Stats
	thresholds Thresholds
	cooldown   time.Duration
	logger     *slog.Logger

	// now is replaceable for tests.
	now func() time.Time

	wg sync.WaitGroup
}

func NewScaler(
	store *ResourceStore,
	ladder FlavorLadder,
	controller VMController,
	resizer ResizeExecutor,
	publisher Publisher,
	stats *Stats,
	cfg RuntimeConfig,
	logger *slog.Logger,
) *Scaler {
	return &Scaler{
		store:      store,
		ladder:     ladder,
		controller: controller,
		resizer:    resizer,
		publisher:  publisher,
		stats:      stats,
		thresholds: cfg.Thresholds(),
		cooldown:   cfg.Cooldown,
		logger:     logger,
		now:        time.Now,
	}
}

// HandleAlert processes a validated alert. It returns quickly: when an
// action is decided, the resize itself runs on its own goroutine under
// the VM's lease.
func (s *Scaler) HandleAlert(ctx context.Context, alert Alert) {
	logger := s.logger.With("vm_id", alert.VMID)

	s.ensureRecord(ctx, alert.VMID, logger)
	s.store.RecordSample(alert.VMID, alert.Sample())

	record, ok := s.store.Get(alert.VMID)
	if !ok {
		// Cannot happen: ensureRecord just created it.
		return
	}

	currentFlavor, err := s.ladder.Flavor(record.CurrentRank)
	if err != nil {
		logger.Error("record holds a rank outside the ladder", "rank", record.CurrentRank, "error", err)
		return
	}

	s.publisher.PublishMetrics(MetricsUpdate{
		VMID:   alert.VMID,
		CPUPct: alert.CPUPct,
		RAMPct: alert.RAMPct,
		Flavor: currentFlavor.Name,
	})

	now := s.now()
	decision := Decide(record.History, record.CurrentRank, s.ladder.MaxRank(), record.CooldownUntil, now, s.thresholds)

	logger = logger.With("action", string(decision.Action))
	for _, comment := range decision.Comments {
		logger.Info(comment)
	}

	if decision.Action == ActionNone {
		return
	}

	if err := s.store.TryBeginAction(alert.VMID, now); err != nil {
		if errors.Is(err, ErrActionInFlight) {
			// Expected when duplicate alerts race: the running action
			// wins, this decision is dropped.
			logger.Info("skipping decision, another action is in flight")
		} else {
			logger.Error("could not acquire action lease", "error", err)
		}

		return
	}

	// The snapshot above predates the lease, so a completion that slipped
	// in between could have moved the rank or started a cooldown. Decide
	// again on a fresh copy now that the lease blocks further changes.
	record, _ = s.store.Get(alert.VMID)
	decision = Decide(record.History, record.CurrentRank, s.ladder.MaxRank(), record.CooldownUntil, now, s.thresholds)

	if decision.Action == ActionNone {
		s.store.AbandonAction(alert.VMID)
		logger.Info("decision no longer holds under the lease, dropping it")

		return
	}

	currentFlavor, err = s.ladder.Flavor(record.CurrentRank)
	if err != nil {
		s.store.AbandonAction(alert.VMID)
		logger.Error("record holds a rank outside the ladder", "rank", record.CurrentRank, "error", err)

		return
	}

	targetFlavor, err := s.ladder.Flavor(decision.TargetRank)
	if err != nil {
		s.store.AbandonAction(alert.VMID)
		logger.Error("decision targets a rank outside the ladder", "rank", decision.TargetRank, "error", err)

		return
	}

	s.wg.Add(1)

	// The resize must survive the alert request's lifetime; only trace
	// context carries over.
	go s.execute(context.WithoutCancel(ctx), alert.VMID, record.CurrentRank, decision, currentFlavor, targetFlavor, logger)
}

func (s *Scaler) execute(ctx context.Context, vmID string, fromRank int, decision Decision, from, to Flavor, logger *slog.Logger) {
	defer s.wg.Done()

	logger = logger.With("from_flavor", from.Name, "to_flavor", to.Name)
	logger.Info("executing resize")

	err := s.resizer.Resize(ctx, vmID, to.Name)
	now := s.now()

	if err == nil {
		s.store.CompleteAction(vmID, true, decision.TargetRank, now, s.cooldown)

		if decision.Action == ActionUp {
			s.stats.ScaleUp()
		} else {
			s.stats.ScaleDown()
		}

		logger.Info("resize succeeded")
		s.publisher.PublishEvent(NewScalingEvent(vmID, fromRank, decision.TargetRank, from.Name, to.Name, OutcomeSucceeded, ""))

		return
	}

	// Failures keep the rank and still start a cooldown, so a broken
	// platform is not hammered on every alert.
	s.store.CompleteAction(vmID, false, fromRank, now, s.cooldown)
	s.stats.Failure()

	outcome := OutcomeFailed

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		outcome = OutcomeRejected
	}

	logger.Error("resize failed", "error", err)
	s.publisher.PublishEvent(NewScalingEvent(vmID, fromRank, fromRank, from.Name, from.Name, outcome, err.Error()))
}

// ensureRecord creates the VM's record on first sight, resolving its
// starting rank from the live platform flavor. When the lookup fails or
// the flavor is not on the ladder, the VM starts at the bottom rank.
func (s *Scaler) ensureRecord(ctx context.Context, vmID string, logger *slog.Logger) {
	if s.store.Has(vmID) {
		return
	}

	rank := 0

	if flavor, err := s.controller.GetFlavor(ctx, vmID); err != nil {
		logger.Warn("could not resolve initial flavor, assuming the smallest", "error", err)
	} else if r, ok := s.ladder.RankOf(flavor); ok {
		rank = r
	} else {
		logger.Warn("VM flavor is not on the ladder, assuming the smallest", "flavor", flavor)
	}

	if s.store.Create(vmID, rank) {
		logger.Info("tracking new VM", "initial_rank", rank)
	}
}

// ReapLeases force-releases leases older than maxAge and reports each as
// a failed action. It backs the lease-timeout safety net.
func (s *Scaler) ReapLeases(maxAge time.Duration) {
	for _, vmID := range s.store.ReapExpiredLeases(s.now(), maxAge) {
		s.logger.Warn("forcibly released an expired lease", "vm_id", vmID, "max_age", maxAge)
		s.stats.Failure()

		record, ok := s.store.Get(vmID)
		if !ok {
			continue
		}

		flavorName := ""
		if flavor, err := s.ladder.Flavor(record.CurrentRank); err == nil {
			flavorName = flavor.Name
		}

		s.publisher.PublishEvent(NewScalingEvent(
			vmID, record.CurrentRank, record.CurrentRank, flavorName, flavorName,
			OutcomeFailed, "lease expired before the action completed",
		))
	}
}

// Wait blocks until all in-flight executions finish. Called on shutdown.
func (s *Scaler) Wait() {
	s.wg.Wait()
}
