package internal_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vertiscale/vertiscalr/internal"
)

type serverFixture struct {
	handler    http.Handler
	scaler     *internal.Scaler
	store      *internal.ResourceStore
	stats      *internal.Stats
	controller *MockVMController
	executor   *MockResizeExecutor
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	ladder, err := internal.ParseLadder("m1.small=1:2048,m1.medium=2:4096,m1.large=4:8192")
	require.NoError(t, err)

	cfg := internal.RuntimeConfig{
		AlertToken:     testToken,
		ScaleUpAbove:   80,
		ScaleDownBelow: 20,
		AverageWindow:  1,
		Cooldown:       time.Minute,
		HistoryWindow:  10,
		ReplayWindow:   16,
		ClockSkew:      time.Minute,
		Ladder:         ladder,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &serverFixture{
		store:      internal.NewResourceStore(cfg.HistoryWindow),
		stats:      internal.NewStats(),
		controller: &MockVMController{},
		executor:   &MockResizeExecutor{},
	}

	hub := internal.NewHub(logger)
	t.Cleanup(hub.Close)

	validator := internal.NewAlertValidator(cfg.AlertToken, cfg.ClockSkew, cfg.ReplayWindow, logger)
	f.scaler = internal.NewScaler(f.store, ladder, f.controller, f.executor, hub, f.stats, cfg, logger)

	server := internal.NewServer(validator, f.scaler, f.store, f.stats, hub, cfg, logger)
	f.handler = server.Handler()

	return f
}

func postAlert(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/alert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return w
}

func alertBody(vmID, token, nonce string, cpu float64) string {
	return fmt.Sprintf(
		`{"vmId":%q,"cpuPct":%.1f,"ramPct":50,"timestamp":%d,"authToken":%q,"nonce":%q}`,
		vmID, cpu, time.Now().Unix(), token, nonce,
	)
}

func TestHandleAlert_Valid_Returns202(t *testing.T) {
	f := setupServer(t)

	f.controller.On("GetFlavor", mock.Anything, "vm-1").Return("m1.small", nil)

	w := postAlert(t, f.handler, alertBody("vm-1", testToken, "n-1", 50))

	require.Equal(t, http.StatusAccepted, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "accepted", body["status"])

	f.scaler.Wait()

	record, ok := f.store.Get("vm-1")
	require.True(t, ok)
	require.Len(t, record.History, 1)
}

func TestHandleAlert_MalformedJSON_Returns400(t *testing.T) {
	f := setupServer(t)

	w := postAlert(t, f.handler, `{"vmId": `)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(1), f.stats.Snapshot().AlertsRejected)
}

func TestHandleAlert_OutOfRangeMetric_Returns400(t *testing.T) {
	f := setupServer(t)

	w := postAlert(t, f.handler, alertBody("vm-1", testToken, "n-1", 150))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAlert_BadToken_Returns401(t *testing.T) {
	f := setupServer(t)

	w := postAlert(t, f.handler, alertBody("vm-1", "wrong", "n-1", 50))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, int64(1), f.stats.Snapshot().AlertsRejected)
}

func TestHandleAlert_ReplayedNonce_Returns409(t *testing.T) {
	f := setupServer(t)

	f.controller.On("GetFlavor", mock.Anything, "vm-1").Return("m1.small", nil)

	require.Equal(t, http.StatusAccepted, postAlert(t, f.handler, alertBody("vm-1", testToken, "n-1", 50)).Code)
	require.Equal(t, http.StatusConflict, postAlert(t, f.handler, alertBody("vm-1", testToken, "n-1", 50)).Code)

	f.scaler.Wait()
}

func TestHandleAlert_GetMethod_Rejected(t *testing.T) {
	f := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/alert", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthz_ReturnsHealthy(t *testing.T) {
	f := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "healthy")
}

func TestAPIPolicies_ServesThresholds(t *testing.T) {
	f := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/policies", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, float64(80), body["scaleUpAbove"])
	require.Equal(t, float64(20), body["scaleDownBelow"])
	require.Equal(t, float64(60), body["cooldownSeconds"])
}

func TestAPIStats_CountsAlerts(t *testing.T) {
	f := setupServer(t)

	f.controller.On("GetFlavor", mock.Anything, "vm-1").Return("m1.small", nil)

	postAlert(t, f.handler, alertBody("vm-1", testToken, "n-1", 50))
	postAlert(t, f.handler, alertBody("vm-1", "wrong", "n-2", 50))
	f.scaler.Wait()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	var snapshot internal.StatsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	require.Equal(t, int64(2), snapshot.AlertsReceived)
	require.Equal(t, int64(1), snapshot.AlertsValid)
	require.Equal(t, int64(1), snapshot.AlertsRejected)
}

func TestAPIVMs_ListsTrackedRecords(t *testing.T) {
	f := setupServer(t)

	f.store.Create("vm-1", 1)

	req := httptest.NewRequest(http.MethodGet, "/api/vms", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "vm-1", body[0]["vmId"])
	require.Equal(t, "m1.medium", body[0]["flavor"])
}
