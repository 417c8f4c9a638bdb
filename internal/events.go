package internal

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal result of a decided scaling action.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeRejected  Outcome = "rejected"
)

// ScalingEvent is emitted exactly once per decided action, success or
// failure, for dashboard observers.
type ScalingEvent struct {
	ID         string    `json:"id"`
	VMID       string    `json:"vmId"`
	FromRank   int       `json:"fromRank"`
	ToRank     int       `json:"toRank"`
	FromFlavor string    `json:"fromFlavor"`
	ToFlavor   string    `json:"toFlavor"`
	Outcome    Outcome   `json:"outcome"`
	Timestamp  time.Time `json:"timestamp"`
	Detail     string    `json:"detail"`
}

// NewScalingEvent stamps the event with an ID and the current time.
func NewScalingEvent(vmID string, fromRank, toRank int, fromFlavor, toFlavor string, outcome Outcome, detail string) ScalingEvent {
	return ScalingEvent{
		ID:         uuid.NewString(),
		VMID:       vmID,
		FromRank:   fromRank,
		ToRank:     toRank,
		FromFlavor: fromFlavor,
		ToFlavor:   toFlavor,
		Outcome:    outcome,
		Timestamp:  time.Now(),
		Detail:     detail,
	}
}

// MetricsUpdate is the live reading pushed to observers on every accepted
// alert.
type MetricsUpdate struct {
	VMID   string  `json:"vmId"`
	CPUPct float64 `json:"cpuPct"`
	RAMPct float64 `json:"ramPct"`
	Flavor string  `json:"flavor"`
}

// Publisher receives the control loop's outputs. Implementations must not
// block the caller for long; delivery to slow observers is best-effort.
type Publisher interface {
	PublishEvent(event ScalingEvent)
	PublishMetrics(update MetricsUpdate)
}

// NopPublisher drops everything. Used when no observer channel is wired.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(ScalingEvent)    {}
func (NopPublisher) PublishMetrics(MetricsUpdate) {}
