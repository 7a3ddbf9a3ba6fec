package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanpulse/backend/internal/config"
	"github.com/urbanpulse/backend/internal/domain"
)

func testGenerator() *Generator {
	return NewGenerator(config.CityConfig{Name: "Delhi", Lat: 28.6139, Lon: 77.2090})
}

func TestTraffic(t *testing.T) {
	g := testGenerator()

	fc := g.Traffic(9)
	require.Len(t, fc.Features, 9)
	require.NoError(t, domain.ValidateFeatureCollection(fc))

	// Category distribution follows the repeating 3-tier cycle.
	var low, moderate, high int
	for _, f := range fc.Features {
		switch f.Properties["congestion"] {
		case "low":
			low++
		case "moderate":
			moderate++
		case "high":
			high++
		}
	}
	assert.Equal(t, 3, low)
	assert.Equal(t, 3, moderate)
	assert.Equal(t, 3, high)
}

func TestTrafficNeverEmpty(t *testing.T) {
	g := testGenerator()
	assert.NotEmpty(t, g.Traffic(0).Features)
	assert.NotEmpty(t, g.Traffic(-5).Features)
	assert.Len(t, g.Traffic(1).Features, 1)
}

func TestAirQuality(t *testing.T) {
	g := testGenerator()

	fc := g.AirQuality()
	require.NotEmpty(t, fc.Features)
	require.NoError(t, domain.ValidateFeatureCollection(fc))

	for _, f := range fc.Features {
		pm25, ok := domain.FloatProp(f.Properties, "pm25")
		require.True(t, ok)
		assert.Greater(t, pm25, 0.0)

		aqi, ok := domain.FloatProp(f.Properties, "aqi")
		require.True(t, ok)
		assert.GreaterOrEqual(t, aqi, 0.0)

		_, ok = domain.StringProp(f.Properties, "category")
		assert.True(t, ok)
	}
}

func TestWeatherAndEnvironment(t *testing.T) {
	g := testGenerator()

	w := g.Weather()
	assert.Equal(t, "Delhi", w.City)
	assert.Equal(t, domain.SourceMock, w.Source)
	assert.InDelta(t, 65.0, w.Humidity, 100)

	env := g.Environment()
	assert.Equal(t, domain.SourceMock, env.Source)
	assert.GreaterOrEqual(t, env.AQI, 0.0)
	assert.GreaterOrEqual(t, env.WindSpeed, 0.0)
}
