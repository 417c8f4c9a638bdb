package internal

import (
	"fmt"
	"time"
)

// Action is the direction of a scaling decision.
type Action string

const (
	ActionNone Action = "none"
	ActionUp   Action = "up"
	ActionDown Action = "down"
)

// Thresholds are the policy parameters, fixed at startup.
type Thresholds struct {
	// ScaleUpAbove and ScaleDownBelow are percentages. A metric average
	// above the former indicates up, below the latter indicates down.
	ScaleUpAbove   float64
	ScaleDownBelow float64

	// AverageWindow is how many of the most recent samples are averaged
	// before comparing against the thresholds. Averaging instead of
	// acting on the latest reading keeps a single noisy sample from
	// flapping the flavor.
	AverageWindow int
}

// Decision is the outcome of evaluating a VM's history against the policy.
type Decision struct {
	Action     Action
	TargetRank int
	Comments   []string
}

// Decide is the pure policy function. It inspects a snapshot of the VM's
// history and state and never touches shared data.
//
// CPU and RAM are evaluated independently. Any metric indicating up wins,
// even if the other indicates down; scaling down requires both metrics
// below the lower threshold. The bias is deliberate: over-provisioning is
// recoverable, starving a loaded VM is not. A decided action always moves
// exactly one ladder step.
func Decide(history []Sample, currentRank, maxRank int, cooldownUntil, now time.Time, thresholds Thresholds) Decision {
	if len(history) == 0 {
		return Decision{
			Action:   ActionNone,
			Comments: []string{"no metric history for this VM yet"},
		}
	}

	cpu := average(history, thresholds.AverageWindow, func(s Sample) float64 { return s.CPUPct })
	ram := average(history, thresholds.AverageWindow, func(s Sample) float64 { return s.RAMPct })

	cpuUp, ramUp := cpu > thresholds.ScaleUpAbove, ram > thresholds.ScaleUpAbove
	cpuDown, ramDown := cpu < thresholds.ScaleDownBelow, ram < thresholds.ScaleDownBelow

	switch {
	case cpuUp || ramUp:
		if now.Before(cooldownUntil) {
			return Decision{
				Action:   ActionNone,
				Comments: []string{fmt.Sprintf("load calls for scaling up, but cooldown is active until %s", cooldownUntil.Format(time.RFC3339))},
			}
		}

		if currentRank >= maxRank {
			return Decision{
				Action:   ActionNone,
				Comments: []string{"load calls for scaling up, but the VM is already at the largest flavor"},
			}
		}

		return Decision{
			Action:     ActionUp,
			TargetRank: currentRank + 1,
			Comments:   []string{fmt.Sprintf("average load above %.0f%% (cpu %.1f%%, ram %.1f%%)", thresholds.ScaleUpAbove, cpu, ram)},
		}

	case cpuDown && ramDown:
		if now.Before(cooldownUntil) {
			return Decision{
				Action:   ActionNone,
				Comments: []string{fmt.Sprintf("load calls for scaling down, but cooldown is active until %s", cooldownUntil.Format(time.RFC3339))},
			}
		}

		if currentRank <= 0 {
			return Decision{
				Action:   ActionNone,
				Comments: []string{"load calls for scaling down, but the VM is already at the smallest flavor"},
			}
		}

		return Decision{
			Action:     ActionDown,
			TargetRank: currentRank - 1,
			Comments:   []string{fmt.Sprintf("average load below %.0f%% (cpu %.1f%%, ram %.1f%%)", thresholds.ScaleDownBelow, cpu, ram)},
		}
	}

	return Decision{
		Action:   ActionNone,
		Comments: []string{fmt.Sprintf("average load in the no-action region (cpu %.1f%%, ram %.1f%%)", cpu, ram)},
	}
}

// average computes the mean of the metric over the last window samples,
// or over the whole history when it is shorter than the window.
func average(history []Sample, window int, metric func(Sample) float64) float64 {
	if window < 1 {
		window = 1
	}

	if window > len(history) {
		window = len(history)
	}

	var sum float64
	for _, sample := range history[len(history)-window:] {
		sum += metric(sample)
	}

	return sum / float64(window)
}
