package internal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vertiscale/vertiscalr/internal"
)

var testThresholds = internal.Thresholds{
	ScaleUpAbove:   80,
	ScaleDownBelow: 20,
	AverageWindow:  3,
}

func samples(cpuRAM ...float64) []internal.Sample {
	out := make([]internal.Sample, 0, len(cpuRAM)/2)
	for i := 0; i+1 < len(cpuRAM); i += 2 {
		out = append(out, internal.Sample{CPUPct: cpuRAM[i], RAMPct: cpuRAM[i+1]})
	}

	return out
}

func TestDecide_NoHistory_NoAction(t *testing.T) {
	decision := internal.Decide(nil, 0, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
	require.Equal(t, []string{"no metric history for this VM yet"}, decision.Comments)
}

func TestDecide_SustainedHighCPU_ScalesUpOneStep(t *testing.T) {
	history := samples(85, 50, 90, 50, 88, 50)

	decision := internal.Decide(history, 0, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionUp, decision.Action)
	require.Equal(t, 1, decision.TargetRank)
}

func TestDecide_AverageBelowThreshold_NoAction(t *testing.T) {
	// One spike does not move the average over the threshold.
	history := samples(95, 50, 40, 50, 45, 50)

	decision := internal.Decide(history, 0, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
	require.Contains(t, decision.Comments[0], "no-action region")
}

func TestDecide_BothMetricsLow_ScalesDownOneStep(t *testing.T) {
	history := samples(10, 15, 12, 10, 8, 12)

	decision := internal.Decide(history, 2, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionDown, decision.Action)
	require.Equal(t, 1, decision.TargetRank)
}

func TestDecide_CPULowRAMHigh_ScalesUp(t *testing.T) {
	// One starved metric beats one idle one.
	history := samples(10, 95, 12, 92, 8, 90)

	decision := internal.Decide(history, 1, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionUp, decision.Action)
	require.Equal(t, 2, decision.TargetRank)
}

func TestDecide_CPULowRAMMid_NoAction(t *testing.T) {
	// Scaling down needs both metrics below the lower threshold.
	history := samples(10, 50, 12, 55, 8, 50)

	decision := internal.Decide(history, 1, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
}

func TestDecide_CooldownActive_SuppressesScaleUp(t *testing.T) {
	history := samples(90, 90, 95, 95, 92, 92)
	now := time.Now()

	decision := internal.Decide(history, 0, 2, now.Add(time.Minute), now, testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
	require.Contains(t, decision.Comments[0], "cooldown is active")
}

func TestDecide_CooldownExpired_ScalesUp(t *testing.T) {
	history := samples(90, 90, 95, 95, 92, 92)
	now := time.Now()

	decision := internal.Decide(history, 0, 2, now.Add(-time.Second), now, testThresholds)

	require.Equal(t, internal.ActionUp, decision.Action)
}

func TestDecide_AtLargestFlavor_NoScaleUp(t *testing.T) {
	history := samples(95, 95)

	decision := internal.Decide(history, 2, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
	require.Contains(t, decision.Comments[0], "already at the largest flavor")
}

func TestDecide_AtSmallestFlavor_NoScaleDown(t *testing.T) {
	history := samples(5, 5)

	decision := internal.Decide(history, 0, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
	require.Contains(t, decision.Comments[0], "already at the smallest flavor")
}

func TestDecide_ShortHistory_AveragesWhatExists(t *testing.T) {
	// A single sample above the threshold is enough when it is the whole
	// history.
	history := samples(90, 90)

	decision := internal.Decide(history, 0, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionUp, decision.Action)
}

func TestDecide_OnlyRecentWindowCounts(t *testing.T) {
	// Old overload followed by a calm window: the stale samples must not
	// drive a resize.
	history := samples(99, 99, 99, 99, 50, 50, 50, 50, 50, 50)

	decision := internal.Decide(history, 0, 2, time.Time{}, time.Now(), testThresholds)

	require.Equal(t, internal.ActionNone, decision.Action)
}
