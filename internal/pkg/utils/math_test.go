package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.5, 0, 1))
	assert.Equal(t, 0.42, Clamp(0.42, 0, 1))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.375, RoundTo(0.37499999999999994, 3))
	assert.Equal(t, 3.14, RoundTo(3.14159, 2))
	assert.Equal(t, 75.0, RoundTo(75.04, 1))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.5, Mean([]float64{0.2, 0.5, 0.8}))
}
