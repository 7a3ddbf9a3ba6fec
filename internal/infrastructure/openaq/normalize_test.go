package openaq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanpulse/backend/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	raw := &latestResponse{
		Results: []station{
			{
				Location:    "City Center",
				Coordinates: &coordinates{Latitude: fptr(28.61), Longitude: fptr(77.21)},
				Measurements: []measurement{
					{Parameter: "no2", Value: fptr(40)},
					{Parameter: "pm25", Value: fptr(12.0)},
				},
			},
			{
				Location:     "Industrial Zone",
				Coordinates:  &coordinates{Latitude: fptr(28.65), Longitude: fptr(77.25)},
				Measurements: []measurement{{Parameter: "pm25", Value: fptr(35.4)}},
			},
			// No pm25 measurement, dropped.
			{
				Location:     "Park Sensor",
				Coordinates:  &coordinates{Latitude: fptr(28.60), Longitude: fptr(77.20)},
				Measurements: []measurement{{Parameter: "pm10", Value: fptr(18.7)}},
			},
			// No coordinates, dropped.
			{
				Location:     "Mobile Unit",
				Measurements: []measurement{{Parameter: "pm25", Value: fptr(20)}},
			},
		},
	}

	fc := Normalize(raw)
	require.Len(t, fc.Features, 2)
	require.NoError(t, domain.ValidateFeatureCollection(fc))

	// Breakpoint edges map exactly onto the band boundaries.
	assert.Equal(t, 50.0, fc.Features[0].Properties["aqi"])
	assert.Equal(t, "Good", fc.Features[0].Properties["category"])
	assert.Equal(t, 100.0, fc.Features[1].Properties["aqi"])
	assert.Equal(t, "Moderate", fc.Features[1].Properties["category"])
	assert.Equal(t, "City Center", fc.Features[0].Properties["station"])
}

func TestNormalizeEmpty(t *testing.T) {
	fc := Normalize(nil)
	assert.Empty(t, fc.Features)
	fc = Normalize(&latestResponse{})
	assert.Empty(t, fc.Features)
}
