package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"github.com/urbanpulse/backend/internal/mockdata"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"github.com/urbanpulse/backend/internal/pkg/utils"
	"go.uber.org/zap"
)

// Number of synthetic road segments generated when traffic degrades to
// mock data.
const mockTrafficSegments = 9

// GatewayUseCase is the single entry point for external data. Every
// fetch resolves, in order: cache hit, live upstream, generated mock.
// The caller always receives a valid non-empty snapshot together with
// its provenance; upstream failures degrade, they never propagate.
type GatewayUseCase struct {
	traffic  repository.TrafficSource
	air      repository.AirQualitySource
	weather  repository.WeatherSource
	mock     *mockdata.Generator
	cache    repository.CacheRepository
	ttl      time.Duration
	demoMode bool
	logger   *zap.Logger
}

func NewGatewayUseCase(
	traffic repository.TrafficSource,
	air repository.AirQualitySource,
	weather repository.WeatherSource,
	mock *mockdata.Generator,
	cache repository.CacheRepository,
	ttl time.Duration,
	demoMode bool,
	logger *zap.Logger,
) *GatewayUseCase {
	return &GatewayUseCase{
		traffic:  traffic,
		air:      air,
		weather:  weather,
		mock:     mock,
		cache:    cache,
		ttl:      ttl,
		demoMode: demoMode,
		logger:   logger,
	}
}

// Traffic returns the current traffic snapshot and its source, one of
// "cache", "live" or "mock".
func (uc *GatewayUseCase) Traffic(ctx context.Context) (*geojson.FeatureCollection, string) {
	return uc.featureCollection(ctx, domain.DomainTraffic, uc.traffic, func() *geojson.FeatureCollection {
		return uc.mock.Traffic(mockTrafficSegments)
	})
}

// AirQuality returns the current air-quality snapshot and its source.
func (uc *GatewayUseCase) AirQuality(ctx context.Context) (*geojson.FeatureCollection, string) {
	return uc.featureCollection(ctx, domain.DomainAQI, uc.air, uc.mock.AirQuality)
}

// Weather returns the current weather report and its source.
func (uc *GatewayUseCase) Weather(ctx context.Context) (*domain.WeatherReport, string) {
	if cached := uc.cacheGet(ctx, domain.DomainWeather); cached != nil {
		var report domain.WeatherReport
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, domain.SourceCache
		}
		uc.logger.Warn("discarding corrupt cached weather")
	}

	if !uc.demoMode && uc.weather.Available() {
		report, err := uc.weather.Fetch(ctx)
		if err == nil && report != nil {
			uc.cacheSet(ctx, domain.DomainWeather, report)
			return report, domain.SourceLive
		}
		uc.logger.Warn("weather fetch failed, falling back to mock", zap.Error(err))
	}

	report := uc.mock.Weather()
	uc.cacheSet(ctx, domain.DomainWeather, report)
	return report, domain.SourceMock
}

// Snapshot fetches one named domain as a JSON-marshalable payload. It
// is the generic form used by the refresher and the history writer;
// unknown names are the caller's error.
func (uc *GatewayUseCase) Snapshot(ctx context.Context, dataDomain string) (any, string, error) {
	switch dataDomain {
	case domain.DomainTraffic:
		fc, source := uc.Traffic(ctx)
		return fc, source, nil
	case domain.DomainAQI:
		fc, source := uc.AirQuality(ctx)
		return fc, source, nil
	case domain.DomainWeather:
		report, source := uc.Weather(ctx)
		return report, source, nil
	default:
		return nil, "", apperrors.ErrUnknownDomain.WithDetails(map[string]interface{}{"domain": dataDomain})
	}
}

// Environment assembles the ambient snapshot a simulation is evaluated
// under: live weather when possible, AQI averaged over the first few
// reporting stations, fixed defaults for values no upstream provides.
func (uc *GatewayUseCase) Environment(ctx context.Context) *domain.EnvironmentalSnapshot {
	weather, weatherSource := uc.Weather(ctx)
	aqiFC, _ := uc.AirQuality(ctx)

	env := &domain.EnvironmentalSnapshot{
		Temperature: weather.Temperature,
		Humidity:    weather.Humidity,
		WindSpeed:   defaultWindSpeed,
		Rainfall:    defaultRainfall,
		AQI:         defaultAQI,
		Source:      weatherSource,
	}
	if weatherSource == domain.SourceCache {
		env.Source = weather.Source
	}

	var aqis []float64
	for _, f := range aqiFC.Features {
		if f == nil {
			continue
		}
		if v, ok := domain.FloatProp(f.Properties, "aqi"); ok {
			aqis = append(aqis, v)
			if len(aqis) == environmentStationSample {
				break
			}
		}
	}
	if len(aqis) > 0 {
		env.AQI = utils.RoundTo(utils.Mean(aqis), 1)
	}
	return env
}

// Environment defaults for conditions no configured upstream reports.
const (
	defaultWindSpeed         = 10.0
	defaultRainfall          = 0.0
	defaultAQI               = 75.0
	environmentStationSample = 5
)

type fetcher interface {
	Available() bool
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

func (uc *GatewayUseCase) featureCollection(ctx context.Context, dataDomain string, src fetcher, mock func() *geojson.FeatureCollection) (*geojson.FeatureCollection, string) {
	if cached := uc.cacheGet(ctx, dataDomain); cached != nil {
		fc := domain.NewFeatureCollection()
		if err := json.Unmarshal(cached, fc); err == nil && len(fc.Features) > 0 {
			return fc, domain.SourceCache
		}
		uc.logger.Warn("discarding corrupt cached snapshot", zap.String("domain", dataDomain))
	}

	if !uc.demoMode && src.Available() {
		fc, err := src.Fetch(ctx)
		if err == nil && fc != nil && len(fc.Features) > 0 {
			err = domain.ValidateFeatureCollection(fc)
			if err == nil {
				uc.cacheSet(ctx, dataDomain, fc)
				return fc, domain.SourceLive
			}
		}
		if err == nil {
			uc.logger.Warn("live fetch returned no features, falling back to mock",
				zap.String("domain", dataDomain))
		} else {
			uc.logger.Warn("live fetch failed, falling back to mock",
				zap.String("domain", dataDomain), zap.Error(err))
		}
	}

	fc := mock()
	uc.cacheSet(ctx, dataDomain, fc)
	return fc, domain.SourceMock
}

func (uc *GatewayUseCase) cacheGet(ctx context.Context, key string) []byte {
	if uc.cache == nil {
		return nil
	}
	value, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return value
}

func (uc *GatewayUseCase) cacheSet(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		uc.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := uc.cache.Set(ctx, key, payload, uc.ttl); err != nil {
		uc.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
