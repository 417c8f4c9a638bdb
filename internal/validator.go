package internal

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// AlertValidator authenticates and sanitizes incoming alerts before the
// rest of the pipeline is allowed to trust them. It is stateless per call
// except for the per-VM nonce windows used for replay protection.
type AlertValidator struct {
	token        []byte
	clockSkew    time.Duration
	replayWindow int
	logger       *slog.Logger

	// now is replaceable for tests.
	now func() time.Time

	mu     sync.Mutex
	nonces map[string]*nonceWindow
}

func NewAlertValidator(token string, clockSkew time.Duration, replayWindow int, logger *slog.Logger) *AlertValidator {
	return &AlertValidator{
		token:        []byte(token),
		clockSkew:    clockSkew,
		replayWindow: replayWindow,
		logger:       logger,
		now:          time.Now,
		nonces:       make(map[string]*nonceWindow),
	}
}

// Validate checks the alert and, on success, records its nonce. Rejection
// has no side effect. The error is one of *MalformedError, *AuthError or
// *ReplayError.
func (v *AlertValidator) Validate(alert Alert) error {
	if alert.VMID == "" {
		return &MalformedError{Reason: "missing required field: vmId"}
	}

	if alert.Nonce == "" {
		return &MalformedError{Reason: "missing required field: nonce"}
	}

	if alert.Timestamp == 0 {
		return &MalformedError{Reason: "missing required field: timestamp"}
	}

	// The token check runs before any value inspection so that
	// unauthenticated senders learn nothing about what the endpoint
	// considers well-formed. The comparison is constant-time.
	if subtle.ConstantTimeCompare([]byte(alert.AuthToken), v.token) != 1 {
		v.logger.Warn("alert rejected, invalid token", "vm_id", alert.VMID)
		return &AuthError{VMID: alert.VMID}
	}

	if alert.CPUPct < 0 || alert.CPUPct > 100 {
		return &MalformedError{Reason: fmt.Sprintf("cpuPct out of range: %.1f", alert.CPUPct)}
	}

	if alert.RAMPct < 0 || alert.RAMPct > 100 {
		return &MalformedError{Reason: fmt.Sprintf("ramPct out of range: %.1f", alert.RAMPct)}
	}

	if age := v.now().Sub(alert.Time()); age > v.clockSkew || age < -v.clockSkew {
		return &MalformedError{Reason: fmt.Sprintf("timestamp outside the accepted clock-skew window (%s off)", age)}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	window, ok := v.nonces[alert.VMID]
	if !ok {
		window = newNonceWindow(v.replayWindow)
		v.nonces[alert.VMID] = window
	}

	if window.Seen(alert.Nonce) {
		v.logger.Warn("alert rejected, nonce replay", "vm_id", alert.VMID, "nonce", alert.Nonce)
		return &ReplayError{VMID: alert.VMID, Nonce: alert.Nonce}
	}

	window.Record(alert.Nonce)

	return nil
}

// nonceWindow is a bounded set with FIFO eviction. Callers hold the
// validator's lock.
type nonceWindow struct {
	capacity int
	order    []string
	seen     map[string]struct{}
}

func newNonceWindow(capacity int) *nonceWindow {
	return &nonceWindow{
		capacity: capacity,
		seen:     make(map[string]struct{}, capacity),
	}
}

func (w *nonceWindow) Seen(nonce string) bool {
	_, ok := w.seen[nonce]
	return ok
}

func (w *nonceWindow) Record(nonce string) {
	if len(w.order) >= w.capacity {
		oldest := w.order[0]
		w.order = w.order[1:]
		delete(w.seen, oldest)
	}

	w.order = append(w.order, nonce)
	w.seen[nonce] = struct{}{}
}
