package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanpulse/backend/internal/config"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/mockdata"
	"github.com/urbanpulse/backend/internal/usecase"
	"go.uber.org/zap"
)

type stubSource struct{}

func (stubSource) Available() bool { return false }

type stubTraffic struct{ stubSource }

func (stubTraffic) Fetch(context.Context) (*geojson.FeatureCollection, error) { return nil, nil }

type stubWeather struct{ stubSource }

func (stubWeather) Fetch(context.Context) (*domain.WeatherReport, error) { return nil, nil }

type recordingRepo struct {
	mu   sync.Mutex
	obs  []*domain.Observation
	seen chan struct{}
}

func (r *recordingRepo) SaveObservation(_ context.Context, o *domain.Observation) error {
	r.mu.Lock()
	r.obs = append(r.obs, o)
	r.mu.Unlock()
	select {
	case r.seen <- struct{}{}:
	default:
	}
	return nil
}

func (r *recordingRepo) GetHistory(context.Context, string, time.Time, time.Time) ([]domain.Observation, error) {
	return nil, nil
}

func (r *recordingRepo) SaveSimulationLog(context.Context, *domain.SimulationLog) error {
	return nil
}

func (r *recordingRepo) Health(context.Context) error { return nil }

func TestRefreshWorker_PersistsEachDomain(t *testing.T) {
	city := config.CityConfig{Name: "Delhi", Lat: 28.6139, Lon: 77.2090}
	gw := usecase.NewGatewayUseCase(
		stubTraffic{}, stubTraffic{}, stubWeather{},
		mockdata.NewGenerator(city),
		nil, time.Minute, false, zap.NewNop(),
	)

	repo := &recordingRepo{seen: make(chan struct{}, 1)}
	w := NewWorker(gw, repo, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-repo.seen:
	case <-time.After(2 * time.Second):
		t.Fatal("no observation persisted")
	}
	require.NoError(t, w.Stop())
	<-done

	repo.mu.Lock()
	defer repo.mu.Unlock()
	domains := make(map[string]bool)
	for _, o := range repo.obs {
		domains[o.Domain] = true
		assert.Equal(t, domain.SourceMock, o.Source)
		assert.NotEmpty(t, o.Payload)
	}
	assert.True(t, domains[domain.DomainTraffic])
	assert.True(t, domains[domain.DomainAQI])
	assert.True(t, domains[domain.DomainWeather])
}
