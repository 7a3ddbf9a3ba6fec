package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"go.uber.org/zap"
)

func TestHeuristicCongestion(t *testing.T) {
	assert.Equal(t, 0.15, HeuristicCongestion(0.2, 0.5))
	assert.Equal(t, 0.375, HeuristicCongestion(0.5, 0.5))
	assert.Equal(t, 0.6, HeuristicCongestion(0.8, 0.5))
	assert.Equal(t, 0.8, HeuristicCongestion(0.8, 0))
	assert.Equal(t, 0.4, HeuristicCongestion(0.8, 1))
}

func TestPredictCongestion_UsesPredictor(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("PredictCongestion", mock.Anything, mock.Anything).Return(0.42, nil)

	bridge := NewPredictionBridge(predictor, zap.NewNop())
	got := bridge.PredictCongestion(context.Background(), domain.FeatureRecord{}, 0.8, 0.5)

	assert.Equal(t, 0.42, got)
}

func TestPredictCongestion_ClampsPrediction(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("PredictCongestion", mock.Anything, mock.Anything).Return(1.7, nil)

	bridge := NewPredictionBridge(predictor, zap.NewNop())
	got := bridge.PredictCongestion(context.Background(), domain.FeatureRecord{}, 0.8, 0.5)

	assert.Equal(t, 1.0, got)
}

func TestPredictCongestion_FallsBackToHeuristic(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("PredictCongestion", mock.Anything, mock.Anything).
		Return(0.0, repository.ErrPredictorUnavailable)

	bridge := NewPredictionBridge(predictor, zap.NewNop())
	got := bridge.PredictCongestion(context.Background(), domain.FeatureRecord{}, 0.8, 0.5)

	assert.Equal(t, 0.6, got)
}

func TestPredictCongestion_NilPredictor(t *testing.T) {
	bridge := NewPredictionBridge(nil, zap.NewNop())
	got := bridge.PredictCongestion(context.Background(), domain.FeatureRecord{}, 0.5, 0.5)

	assert.Equal(t, 0.375, got)
}

func TestPredict_SurfacesUnavailability(t *testing.T) {
	predictor := new(mockPredictor)
	predictor.On("PredictCongestion", mock.Anything, mock.Anything).
		Return(0.0, repository.ErrPredictorUnavailable)

	bridge := NewPredictionBridge(predictor, zap.NewNop())
	_, err := bridge.Predict(context.Background(), domain.FeatureRecord{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrPredictorUnavailable.Code, appErr.Code)

	bridge = NewPredictionBridge(nil, zap.NewNop())
	_, err = bridge.Predict(context.Background(), domain.FeatureRecord{})
	assert.Error(t, err)
}
