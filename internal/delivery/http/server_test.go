package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanpulse/backend/internal/config"
	"github.com/urbanpulse/backend/internal/delivery/http/handler"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/mockdata"
	"github.com/urbanpulse/backend/internal/usecase"
	"go.uber.org/zap"
)

type offlineSource struct{}

func (offlineSource) Available() bool { return false }

type offlineTraffic struct{ offlineSource }

func (offlineTraffic) Fetch(context.Context) (*geojson.FeatureCollection, error) { return nil, nil }

type offlineWeather struct{ offlineSource }

func (offlineWeather) Fetch(context.Context) (*domain.WeatherReport, error) { return nil, nil }

// newTestServer wires a server with no credentials, no cache and no
// database, the same shape a bare DEMO_MODE deployment has.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.City = config.CityConfig{Name: "Delhi", Lat: 28.6139, Lon: 77.2090}

	logger := zap.NewNop()
	gw := usecase.NewGatewayUseCase(
		offlineTraffic{}, offlineTraffic{}, offlineWeather{},
		mockdata.NewGenerator(cfg.City),
		nil, time.Minute, false, logger,
	)
	bridge := usecase.NewPredictionBridge(nil, logger)
	simUC := usecase.NewSimulationUseCase(gw, bridge, nil, logger)

	return NewServer(
		cfg,
		logger,
		handler.NewDataHandler(gw, logger),
		handler.NewSimulationHandler(simUC, logger),
		handler.NewHistoryHandler(nil, logger),
		handler.NewHealthHandler(map[string]handler.HealthChecker{"database": nil, "cache": nil}, true),
	)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp.StatusCode, payload
}

func TestGetTraffic_DegradesToMock(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodGet, "/api/v1/data/traffic", nil)
	require.Equal(t, http.StatusOK, status)

	meta := payload["meta"].(map[string]any)
	assert.Equal(t, domain.SourceMock, meta["source"])

	data := payload["data"].(map[string]any)
	features := data["features"].([]any)
	assert.NotEmpty(t, features)
}

func TestGetWeather(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodGet, "/api/v1/data/weather", nil)
	require.Equal(t, http.StatusOK, status)

	data := payload["data"].(map[string]any)
	assert.Equal(t, "Delhi", data["city"])
	assert.Equal(t, domain.SourceMock, data["source"])
}

func TestSimulate_OK(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodPost, "/api/v1/simulate",
		map[string]any{"vehicle_reduction": 30})
	require.Equal(t, http.StatusOK, status)

	data := payload["data"].(map[string]any)
	metrics := data["metrics"].(map[string]any)
	assert.Less(t,
		metrics["avg_congestion_after"].(float64),
		metrics["avg_congestion_before"].(float64)+1e-9)
	assert.NotNil(t, data["before"])
	assert.NotNil(t, data["after"])
}

func TestSimulate_InvalidReduction(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodPost, "/api/v1/simulate",
		map[string]any{"vehicle_reduction": 150})
	require.Equal(t, http.StatusBadRequest, status)

	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "INVALID_INPUT", errObj["code"])
}

func TestSimulate_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, "/api/v1/simulate",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredict_MissingFields(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodPost, "/api/v1/predict",
		map[string]any{"avg_speed": 30})
	require.Equal(t, http.StatusBadRequest, status)

	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestPredict_NoPredictorConfigured(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodPost, "/api/v1/predict", map[string]any{
		"avg_speed":     30.0,
		"vehicle_count": 100,
		"pm25":          40.0,
		"temperature":   25.0,
		"humidity":      60.0,
	})
	require.Equal(t, http.StatusServiceUnavailable, status)

	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "PREDICTOR_UNAVAILABLE", errObj["code"])
}

func TestHistory_UnknownDomain(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodGet, "/api/v1/history/seismic", nil)
	require.Equal(t, http.StatusBadRequest, status)

	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "UNKNOWN_DOMAIN", errObj["code"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, payload := doJSON(t, s, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, true, payload["demo_mode"])

	components := payload["components"].(map[string]any)
	assert.Equal(t, "disabled", components["database"])
}
