package internal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server exposes the alert-ingestion endpoint, the read-only dashboard
// API and the WebSocket event stream.
type Server struct {
	validator *AlertValidator
	scaler    *Scaler
	store     *ResourceStore
	stats     *Stats
	hub       *Hub
	cfg       RuntimeConfig
	logger    *slog.Logger
}

func NewServer(validator *AlertValidator, scaler *Scaler, store *ResourceStore, stats *Stats, hub *Hub, cfg RuntimeConfig, logger *slog.Logger) *Server {
	return &Server{
		validator: validator,
		scaler:    scaler,
		store:     store,
		stats:     stats,
		hub:       hub,
		cfg:       cfg,
		logger:    logger,
	}
}

// Handler returns the HTTP routes, wrapped with tracing middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /alert", s.handleAlert)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/policies", s.handlePolicies)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/vms", s.handleVMs)
	mux.Handle("GET /events", s.hub)

	return otelhttp.NewHandler(mux, "vertiscalr")
}

// handleAlert ingests one metric alert. Every request gets a definite
// status: 202 accepted, 400 malformed, 401 bad token, 409 replay.
func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	s.stats.AlertReceived()

	var alert Alert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		s.stats.AlertRejected()
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not decode alert payload"})

		return
	}

	if err := s.validator.Validate(alert); err != nil {
		s.stats.AlertRejected()

		status := http.StatusBadRequest

		var authErr *AuthError
		var replayErr *ReplayError

		switch {
		case errors.As(err, &authErr):
			status = http.StatusUnauthorized
		case errors.As(err, &replayErr):
			status = http.StatusConflict
		}

		s.writeJSON(w, status, map[string]string{"error": err.Error()})

		return
	}

	s.stats.AlertValid()
	s.scaler.HandleAlert(r.Context(), alert)

	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handlePolicies serves the active policy parameters. They are fixed at
// startup, so this is a plain read.
func (s *Server) handlePolicies(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"scaleUpAbove":     s.cfg.ScaleUpAbove,
		"scaleDownBelow":   s.cfg.ScaleDownBelow,
		"averageWindow":    s.cfg.AverageWindow,
		"cooldownSeconds":  s.cfg.Cooldown.Seconds(),
		"historyWindow":    s.cfg.HistoryWindow,
		"maxRetryAttempts": s.cfg.MaxRetryAttempts,
		"flavorLadder":     s.cfg.Ladder,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleVMs(w http.ResponseWriter, _ *http.Request) {
	records := s.store.Records()

	type vmView struct {
		ResourceRecord
		Flavor string `json:"flavor"`
	}

	views := make([]vmView, 0, len(records))
	for _, record := range records {
		view := vmView{ResourceRecord: record}
		if flavor, err := s.cfg.Ladder.Flavor(record.CurrentRank); err == nil {
			view.Flavor = flavor.Name
		}

		views = append(views, view)
	}

	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}
