package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// Envelope is the frame pushed to every WebSocket subscriber.
type Envelope struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

const (
	envelopeTypeMetrics = "metrics"
	envelopeTypeScaling = "scaling_event"
)

// Hub fans scaling events and metric updates out to connected dashboard
// clients. Subscribers that cannot keep up are disconnected rather than
// allowed to stall the control loop.
type Hub struct {
	logger       *slog.Logger
	writeTimeout time.Duration
	sendBuffer   int

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	closed      bool
}

type subscriber struct {
	frames chan []byte
	drop   func()
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:       logger,
		writeTimeout: 5 * time.Second,
		sendBuffer:   16,
		subscribers:  make(map[*subscriber]struct{}),
	}
}

// PublishEvent implements Publisher.
func (h *Hub) PublishEvent(event ScalingEvent) {
	h.broadcast(envelopeTypeScaling, event)
}

// PublishMetrics implements Publisher.
func (h *Hub) PublishMetrics(update MetricsUpdate) {
	h.broadcast(envelopeTypeMetrics, update)
}

func (h *Hub) broadcast(frameType string, payload any) {
	frame, err := json.Marshal(Envelope{
		Type:      frameType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	})
	if err != nil {
		h.logger.Warn("could not encode broadcast frame", "type", frameType, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers {
		select {
		case sub.frames <- frame:
		default:
			// The subscriber's buffer is full: it is too slow to keep.
			sub.drop()
		}
	}
}

// ServeHTTP upgrades the request to a WebSocket subscription and streams
// envelopes until the client disconnects or the hub shuts down.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("could not accept websocket connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := &subscriber{
		frames: make(chan []byte, h.sendBuffer),
		drop:   cancel,
	}

	if !h.add(sub) {
		conn.Close(websocket.StatusGoingAway, "shutting down")
		return
	}
	defer h.remove(sub)

	// Drain inbound frames so pings and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case frame := <-sub.frames:
			wctx, wcancel := context.WithTimeout(ctx, h.writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			wcancel()

			if err != nil {
				h.logger.Debug("dropping websocket subscriber", "error", err)
				conn.Close(websocket.StatusPolicyViolation, "write timeout")

				return
			}
		}
	}
}

func (h *Hub) add(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	h.subscribers[sub] = struct{}{}

	return true
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subscribers, sub)
}

// Close disconnects all subscribers and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subscribers {
		sub.drop()
	}
}
