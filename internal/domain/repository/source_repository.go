package repository

import (
	"context"

	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain"
)

// TrafficSource fetches and normalizes one upstream traffic vendor.
// Available reports whether the credential the vendor requires is
// configured; when it is false the gateway skips straight to mock data.
type TrafficSource interface {
	Available() bool
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

// AirQualitySource fetches and normalizes one air-quality upstream.
type AirQualitySource interface {
	Available() bool
	Fetch(ctx context.Context) (*geojson.FeatureCollection, error)
}

// WeatherSource fetches the canonical scalar weather object.
type WeatherSource interface {
	Available() bool
	Fetch(ctx context.Context) (*domain.WeatherReport, error)
}
