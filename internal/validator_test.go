package internal_test

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vertiscale/vertiscalr/internal"
)

const testToken = "sekrit"

func newValidator() *internal.AlertValidator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return internal.NewAlertValidator(testToken, time.Minute, 4, logger)
}

func validAlert(nonce string) internal.Alert {
	return internal.Alert{
		VMID:      "vm-1",
		CPUPct:    50,
		RAMPct:    50,
		Timestamp: float64(time.Now().Unix()),
		AuthToken: testToken,
		Nonce:     nonce,
	}
}

func TestValidate_ValidAlert_Accepted(t *testing.T) {
	sut := newValidator()

	require.NoError(t, sut.Validate(validAlert("n-1")))
}

func TestValidate_MissingVMID_Malformed(t *testing.T) {
	sut := newValidator()

	alert := validAlert("n-1")
	alert.VMID = ""

	err := sut.Validate(alert)

	var malformed *internal.MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Reason, "vmId")
}

func TestValidate_MissingNonce_Malformed(t *testing.T) {
	sut := newValidator()

	alert := validAlert("")

	err := sut.Validate(alert)

	var malformed *internal.MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Reason, "nonce")
}

func TestValidate_WrongToken_AuthError(t *testing.T) {
	sut := newValidator()

	alert := validAlert("n-1")
	alert.AuthToken = "wrong"

	err := sut.Validate(alert)

	var authErr *internal.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "vm-1", authErr.VMID)
}

func TestValidate_WrongToken_BeforeValueChecks(t *testing.T) {
	// An unauthenticated sender must not learn which fields are range
	// checked, so the token error wins over the malformed metric.
	sut := newValidator()

	alert := validAlert("n-1")
	alert.AuthToken = "wrong"
	alert.CPUPct = 400

	err := sut.Validate(alert)

	var authErr *internal.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestValidate_MetricOutOfRange_Malformed(t *testing.T) {
	sut := newValidator()

	for _, cpu := range []float64{-1, 100.5} {
		alert := validAlert(fmt.Sprintf("n-%f", cpu))
		alert.CPUPct = cpu

		err := sut.Validate(alert)

		var malformed *internal.MalformedError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Reason, "cpuPct")
	}
}

func TestValidate_StaleTimestamp_Malformed(t *testing.T) {
	sut := newValidator()

	alert := validAlert("n-1")
	alert.Timestamp = float64(time.Now().Add(-10 * time.Minute).Unix())

	err := sut.Validate(alert)

	var malformed *internal.MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Reason, "clock-skew")
}

func TestValidate_FutureTimestamp_Malformed(t *testing.T) {
	sut := newValidator()

	alert := validAlert("n-1")
	alert.Timestamp = float64(time.Now().Add(10 * time.Minute).Unix())

	err := sut.Validate(alert)

	var malformed *internal.MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestValidate_ReplayedNonce_Rejected(t *testing.T) {
	sut := newValidator()

	require.NoError(t, sut.Validate(validAlert("n-1")))

	err := sut.Validate(validAlert("n-1"))

	var replay *internal.ReplayError
	require.ErrorAs(t, err, &replay)
	require.Equal(t, "n-1", replay.Nonce)
}

func TestValidate_NonceWindowsArePerVM(t *testing.T) {
	sut := newValidator()

	first := validAlert("shared-nonce")
	require.NoError(t, sut.Validate(first))

	second := validAlert("shared-nonce")
	second.VMID = "vm-2"
	require.NoError(t, sut.Validate(second))
}

func TestValidate_RejectedAlertDoesNotRecordNonce(t *testing.T) {
	sut := newValidator()

	bad := validAlert("n-1")
	bad.CPUPct = 200
	require.Error(t, sut.Validate(bad))

	// The nonce was never accepted, so the valid retry passes.
	require.NoError(t, sut.Validate(validAlert("n-1")))
}

func TestValidate_NonceWindowEvictsOldest(t *testing.T) {
	sut := newValidator()

	for i := 0; i < 5; i++ {
		require.NoError(t, sut.Validate(validAlert(fmt.Sprintf("n-%d", i))))
	}

	// Window capacity is 4, so n-0 has been evicted and is accepted again.
	require.NoError(t, sut.Validate(validAlert("n-0")))

	// n-4 is still in the window.
	err := sut.Validate(validAlert("n-4"))

	var replay *internal.ReplayError
	require.ErrorAs(t, err, &replay)
}
