package domain

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Data domains served by the gateway.
const (
	DomainTraffic = "traffic"
	DomainAQI     = "aqi"
	DomainWeather = "weather"
)

// Provenance of a snapshot.
const (
	SourceLive  = "live"
	SourceMock  = "mock"
	SourceCache = "cache"
)

// NewFeatureCollection returns a collection whose features slice is
// never nil, so it always serializes with a "features" key.
func NewFeatureCollection() *geojson.FeatureCollection {
	return geojson.NewFeatureCollection()
}

// ValidateFeatureCollection checks the canonical schema invariants:
// only Point and LineString geometries, LineStrings with at least two
// positions, and every position inside valid lon/lat bounds.
func ValidateFeatureCollection(fc *geojson.FeatureCollection) error {
	if fc == nil {
		return fmt.Errorf("feature collection is nil")
	}
	for i, f := range fc.Features {
		if f == nil {
			return fmt.Errorf("feature %d is nil", i)
		}
		switch geom := f.Geometry.(type) {
		case orb.Point:
			if err := validatePosition(geom); err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
		case orb.LineString:
			if len(geom) < 2 {
				return fmt.Errorf("feature %d: linestring has %d positions, need at least 2", i, len(geom))
			}
			for _, pt := range geom {
				if err := validatePosition(pt); err != nil {
					return fmt.Errorf("feature %d: %w", i, err)
				}
			}
		default:
			return fmt.Errorf("feature %d: unsupported geometry type %T", i, f.Geometry)
		}
	}
	return nil
}

func validatePosition(pt orb.Point) error {
	if pt.Lon() < -180 || pt.Lon() > 180 {
		return fmt.Errorf("longitude %f out of range", pt.Lon())
	}
	if pt.Lat() < -90 || pt.Lat() > 90 {
		return fmt.Errorf("latitude %f out of range", pt.Lat())
	}
	return nil
}

// FloatProp returns the first property among keys that holds a numeric
// value. JSON decoding yields float64, in-memory construction may use
// int, so both are accepted.
func FloatProp(props geojson.Properties, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		}
	}
	return 0, false
}

// IntProp is FloatProp truncated to int.
func IntProp(props geojson.Properties, keys ...string) (int, bool) {
	v, ok := FloatProp(props, keys...)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// StringProp returns the first string-valued property among keys.
func StringProp(props geojson.Properties, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := props[key].(string); ok {
			return v, true
		}
	}
	return "", false
}
