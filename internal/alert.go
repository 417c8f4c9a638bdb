package internal

import "time"

// Alert is the metric push emitted by the agent running on each VM. It is
// ephemeral: once validated it is reduced to a Sample in the VM's bounded
// history and the nonce is remembered for replay protection.
type Alert struct {
	VMID      string  `json:"vmId"`
	CPUPct    float64 `json:"cpuPct"`
	RAMPct    float64 `json:"ramPct"`
	Timestamp float64 `json:"timestamp"`
	AuthToken string  `json:"authToken"`
	Nonce     string  `json:"nonce"`
}

// Time converts the alert's unix timestamp (seconds, fractional allowed)
// to a time.Time.
func (a Alert) Time() time.Time {
	sec := int64(a.Timestamp)
	nsec := int64((a.Timestamp - float64(sec)) * float64(time.Second))

	return time.Unix(sec, nsec)
}

// Sample converts the alert into the metric sample kept in history.
func (a Alert) Sample() Sample {
	return Sample{
		Timestamp: a.Time(),
		CPUPct:    a.CPUPct,
		RAMPct:    a.RAMPct,
	}
}
