package usecase

import (
	"context"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/mock"
	"github.com/urbanpulse/backend/internal/config"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"github.com/urbanpulse/backend/internal/mockdata"
	"go.uber.org/zap"
)

type mockTrafficSource struct {
	mock.Mock
}

func (m *mockTrafficSource) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockTrafficSource) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx)
	if fc := args.Get(0); fc != nil {
		return fc.(*geojson.FeatureCollection), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAirSource struct {
	mock.Mock
}

func (m *mockAirSource) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockAirSource) Fetch(ctx context.Context) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx)
	if fc := args.Get(0); fc != nil {
		return fc.(*geojson.FeatureCollection), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWeatherSource struct {
	mock.Mock
}

func (m *mockWeatherSource) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockWeatherSource) Fetch(ctx context.Context) (*domain.WeatherReport, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*domain.WeatherReport), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCacheRepository struct {
	mock.Mock
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) PredictCongestion(ctx context.Context, rec domain.FeatureRecord) (float64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(float64), args.Error(1)
}

type mockObservationRepository struct {
	mock.Mock
}

func (m *mockObservationRepository) SaveObservation(ctx context.Context, obs *domain.Observation) error {
	return m.Called(ctx, obs).Error(0)
}

func (m *mockObservationRepository) GetHistory(ctx context.Context, dataDomain string, from, to time.Time) ([]domain.Observation, error) {
	args := m.Called(ctx, dataDomain, from, to)
	if v := args.Get(0); v != nil {
		return v.([]domain.Observation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockObservationRepository) SaveSimulationLog(ctx context.Context, entry *domain.SimulationLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockObservationRepository) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testCity() config.CityConfig {
	return config.CityConfig{
		Name: "Delhi",
		Lat:  28.6139,
		Lon:  77.2090,
		BBox: "28.4,77.0,28.7,77.3",
	}
}

func newTestGateway(traffic *mockTrafficSource, air *mockAirSource, weather *mockWeatherSource, cache *mockCacheRepository) *GatewayUseCase {
	var cacheRepo repository.CacheRepository
	if cache != nil {
		cacheRepo = cache
	}
	return NewGatewayUseCase(
		traffic,
		air,
		weather,
		mockdata.NewGenerator(testCity()),
		cacheRepo,
		5*time.Minute,
		false,
		zap.NewNop(),
	)
}

// trafficFixture builds a minimal valid snapshot with the given
// congestion levels; all segments start at 30 km/h with 100 vehicles.
func trafficFixture(congestion ...float64) *geojson.FeatureCollection {
	fc := domain.NewFeatureCollection()
	for i, c := range congestion {
		f := geojson.NewFeature(orb.LineString{
			{77.20 + float64(i)*0.01, 28.60},
			{77.21 + float64(i)*0.01, 28.61},
		})
		f.Properties["segment_id"] = i + 1
		f.Properties["avg_speed"] = 30.0
		f.Properties["vehicle_count"] = 100
		f.Properties["congestion_level"] = c
		fc.Append(f)
	}
	return fc
}

// airFixture builds a station snapshot with the given AQI values.
func airFixture(aqis ...float64) *geojson.FeatureCollection {
	fc := domain.NewFeatureCollection()
	for i, a := range aqis {
		f := geojson.NewFeature(orb.Point{77.20 + float64(i)*0.01, 28.60})
		f.Properties["aqi"] = a
		f.Properties["pm25"] = a * 0.4
		fc.Append(f)
	}
	return fc
}
