package internal_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/vertiscale/vertiscalr/internal"
)

func setupHub(t *testing.T) (*internal.Hub, *httptest.Server) {
	t.Helper()

	hub := internal.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(hub.Close)

	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)

	return hub, server
}

func dialHub(t *testing.T, ctx context.Context, server *httptest.Server) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, "ws"+server.URL[len("http"):], nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })

	return conn
}

func readEnvelope(t *testing.T, ctx context.Context, conn *websocket.Conn) internal.Envelope {
	t.Helper()

	kind, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, kind)

	var envelope internal.Envelope
	require.NoError(t, json.Unmarshal(data, &envelope))

	return envelope
}

func TestHub_PublishMetrics_ReachesSubscriber(t *testing.T) {
	hub, server := setupHub(t)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	conn := dialHub(t, ctx, server)

	// The subscription registers asynchronously with the dial, so publish
	// until a frame arrives.
	var envelope internal.Envelope
	done := make(chan struct{})
	go func() {
		defer close(done)
		envelope = readEnvelope(t, ctx, conn)
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for waiting := true; waiting; {
		select {
		case <-done:
			waiting = false
		case <-ctx.Done():
			t.Fatal("subscriber did not receive the update in time")
		case <-ticker.C:
			hub.PublishMetrics(internal.MetricsUpdate{VMID: "vm-1", CPUPct: 42, RAMPct: 24, Flavor: "m1.small"})
		}
	}

	require.Equal(t, "metrics", envelope.Type)
	require.NotZero(t, envelope.Timestamp)

	payload, err := json.Marshal(envelope.Payload)
	require.NoError(t, err)

	var update internal.MetricsUpdate
	require.NoError(t, json.Unmarshal(payload, &update))
	require.Equal(t, "vm-1", update.VMID)
	require.Equal(t, float64(42), update.CPUPct)
}

func TestHub_PublishEvent_ReachesAllSubscribers(t *testing.T) {
	hub, server := setupHub(t)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	first := dialHub(t, ctx, server)
	second := dialHub(t, ctx, server)

	// Publish until both connections have been registered and served.
	event := internal.NewScalingEvent("vm-1", 0, 1, "m1.small", "m1.medium", internal.OutcomeSucceeded, "")

	done := make(chan struct{})
	go func() {
		defer close(done)

		for _, conn := range []*websocket.Conn{first, second} {
			envelope := readEnvelope(t, ctx, conn)
			require.Equal(t, "scaling_event", envelope.Type)
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			t.Fatal("subscribers did not receive the event in time")
		case <-ticker.C:
			hub.PublishEvent(event)
		}
	}
}

func TestHub_ClosedHub_RefusesSubscribers(t *testing.T) {
	hub, server := setupHub(t)
	hub.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+server.URL[len("http"):], nil)
	if err != nil {
		// The server side may reject the handshake outright.
		return
	}

	// Otherwise the connection is accepted and immediately closed.
	_, _, err = conn.Read(ctx)
	require.Error(t, err)
}
