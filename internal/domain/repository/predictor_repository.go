package repository

import (
	"context"
	"errors"

	"github.com/urbanpulse/backend/internal/domain"
)

// ErrPredictorUnavailable signals that no trained model can serve the
// request. Callers are expected to fall back to the heuristic path.
var ErrPredictorUnavailable = errors.New("predictor unavailable")

// Predictor estimates a congestion level in [0,1] from segment features.
type Predictor interface {
	PredictCongestion(ctx context.Context, rec domain.FeatureRecord) (float64, error)
}
