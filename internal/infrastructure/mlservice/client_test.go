package mlservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"go.uber.org/zap"
)

func TestPredictCongestion(t *testing.T) {
	logger := zap.NewNop()
	rec := domain.FeatureRecord{
		AvgSpeed:     25,
		VehicleCount: 600,
		PM25:         37.5,
		Temperature:  25.5,
		Humidity:     65,
		WindSpeed:    10,
		SegmentID:    1,
	}

	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"prediction": 0.42}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, 5*time.Second, logger)
		got, err := c.PredictCongestion(context.Background(), rec)
		require.NoError(t, err)
		assert.Equal(t, 0.42, got)
	})

	t.Run("empty URL means unavailable", func(t *testing.T) {
		c := NewClient("", time.Second, logger)
		_, err := c.PredictCongestion(context.Background(), rec)
		assert.ErrorIs(t, err, repository.ErrPredictorUnavailable)
	})

	t.Run("503 means unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := NewClient(server.URL, time.Second, logger)
		_, err := c.PredictCongestion(context.Background(), rec)
		assert.ErrorIs(t, err, repository.ErrPredictorUnavailable)
	})

	t.Run("unreachable service wraps unavailable", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", time.Second, logger)
		_, err := c.PredictCongestion(context.Background(), rec)
		assert.True(t, errors.Is(err, repository.ErrPredictorUnavailable))
	})
}
