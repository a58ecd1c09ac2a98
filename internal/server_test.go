package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/gymstreak/internal/config"
	"github.com/2beens/gymstreak/internal/gymstats/logs"
	"github.com/2beens/gymstreak/internal/gymstats/settings"
	"github.com/2beens/gymstreak/internal/telemetry/metrics"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, redismock.ClientMock) {
	t.Helper()

	rdb, mock := redismock.NewClientMock()
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	metricsManager, promRegistry := metrics.NewTestManagerAndRegistry()
	return &Server{
		config: &config.Config{
			AllowedOrigins:       []string{"https://gymstreak.app"},
			StatsRateLimitPerMin: 10,
		},
		versionInfo:    "test-version",
		clock:          time.Now,
		redisClient:    rdb,
		logsRepo:       logs.NewRepo(nil),
		settingsStore:  settings.NewStore(rdb, 0, time.Minute),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   func() {},
	}, mock
}

func TestServer_Health(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.routerSetup()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("User-Agent", "curl/8.4.0")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok test-version", rr.Body.String())
}

func TestServer_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.routerSetup()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/weather/current", nil)
	req.Header.Set("User-Agent", "curl/8.4.0")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}

func TestServer_CorsRejected(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.routerSetup()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/gymstats/users/u1/settings", nil)
	req.Header.Set("Origin", "https://evil.example")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestServer_GetSettings(t *testing.T) {
	server, mock := newTestServer(t)
	router := server.routerSetup()

	mock.ExpectGet("gymstreak::settings::u1").SetVal(`{"restDaysBuffer":2,"timezone":"Europe/Paris"}`)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/gymstats/users/u1/settings", nil)
	req.Header.Set("Origin", "https://gymstreak.app")
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://gymstreak.app", rr.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, float64(2), body["restDaysBuffer"])
	assert.Equal(t, "Europe/Paris", body["timezone"])
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 1, testutil.CollectAndCount(server.metricsManager.CounterRequests))
}

func Test_connStateMetrics(t *testing.T) {
	server, _ := newTestServer(t)

	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateActive)
	server.connStateMetrics(nil, http.StateClosed)

	assert.Equal(t, float64(1), testutil.ToFloat64(server.metricsManager.GaugeOpenConnections))
}
