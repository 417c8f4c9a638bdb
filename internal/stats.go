package internal

import "sync/atomic"

// Stats are the adapter's running counters, served on the read-only API.
type Stats struct {
	alertsReceived atomic.Int64
	alertsValid    atomic.Int64
	alertsRejected atomic.Int64
	scaleUps       atomic.Int64
	scaleDowns     atomic.Int64
	failures       atomic.Int64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) AlertReceived() { s.alertsReceived.Add(1) }
func (s *Stats) AlertValid()    { s.alertsValid.Add(1) }
func (s *Stats) AlertRejected() { s.alertsRejected.Add(1) }
func (s *Stats) ScaleUp()       { s.scaleUps.Add(1) }
func (s *Stats) ScaleDown()     { s.scaleDowns.Add(1) }
func (s *Stats) Failure()       { s.failures.Add(1) }

// StatsSnapshot is the JSON shape of the counters.
type StatsSnapshot struct {
	AlertsReceived int64 `json:"alertsReceived"`
	AlertsValid    int64 `json:"alertsValid"`
	AlertsRejected int64 `json:"alertsRejected"`
	ScaleUps       int64 `json:"scaleUps"`
	ScaleDowns     int64 `json:"scaleDowns"`
	Failures       int64 `json:"failures"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		AlertsReceived: s.alertsReceived.Load(),
		AlertsValid:    s.alertsValid.Load(),
		AlertsRejected: s.alertsRejected.Load(),
		ScaleUps:       s.scaleUps.Load(),
		ScaleDowns:     s.scaleDowns.Load(),
		Failures:       s.failures.Load(),
	}
}
