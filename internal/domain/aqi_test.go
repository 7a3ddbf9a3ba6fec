package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAQIFromPM25Boundaries(t *testing.T) {
	// Exact band edges: the Good/Moderate boundary and the
	// Moderate/USG boundary.
	assert.InDelta(t, 50.0, AQIFromPM25(12.0), 1e-9)
	assert.InDelta(t, 100.0, AQIFromPM25(35.4), 1e-9)
	assert.InDelta(t, 0.0, AQIFromPM25(0), 1e-9)
	assert.InDelta(t, 400.0, AQIFromPM25(1000), 1e-9)
}

func TestAQIFromPM25Interpolation(t *testing.T) {
	// Midpoint of the Good band.
	assert.InDelta(t, 25.0, AQIFromPM25(6.0), 1e-9)
	// 22.5 µg/m³ sits inside the Moderate band.
	got := AQIFromPM25(22.5)
	assert.Greater(t, got, 50.0)
	assert.Less(t, got, 100.0)
}

func TestAQICategory(t *testing.T) {
	assert.Equal(t, "Good", AQICategory(10))
	assert.Equal(t, "Moderate", AQICategory(22.5))
	assert.Equal(t, "Unhealthy for Sensitive Groups", AQICategory(40))
	assert.Equal(t, "Unhealthy", AQICategory(100))
	assert.Equal(t, "Very Unhealthy", AQICategory(200))
	assert.Equal(t, "Hazardous", AQICategory(500))
}
