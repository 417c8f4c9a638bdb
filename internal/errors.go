package internal

import (
	"errors"
	"fmt"
)

// ErrActionInFlight is returned by the store when a resize is already
// running for the VM. It is an expected concurrency outcome, not a fault:
// callers drop the decision and move on.
var ErrActionInFlight = errors.New("another action is already in flight")

// AuthError means the alert's authentication token did not match the
// configured shared secret.
type AuthError struct {
	VMID string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("invalid authentication token from %q", e.VMID)
}

// ReplayError means the alert carried a nonce that was already accepted
// for the same VM within the replay window.
type ReplayError struct {
	VMID  string
	Nonce string
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("nonce %q already seen for %q", e.Nonce, e.VMID)
}

// MalformedError means the alert failed structural validation: missing
// fields, metrics outside [0,100] or a timestamp outside the accepted
// clock-skew window.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return e.Reason
}

// RejectedError means the cloud API refused the resize outright (quota,
// invalid flavor, VM in a state that cannot be resized). It is terminal
// and never retried.
type RejectedError struct {
	Reason string
	Err    error
}

func (e *RejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resize rejected: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("resize rejected: %s", e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// TransientError wraps a failure worth retrying: network errors, 5xx
// responses, throttling, and resize polls that exceeded their deadline.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether the error may succeed on retry.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}
