package usecase

import (
	"context"
	"errors"

	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"github.com/urbanpulse/backend/internal/pkg/utils"
	"go.uber.org/zap"
)

// PredictionBridge fronts the external predictor. Every predictor
// failure degrades to a deterministic, side-effect-free heuristic, the
// only path guaranteed to work in a deployment with no trained model.
type PredictionBridge struct {
	predictor repository.Predictor
	logger    *zap.Logger
}

func NewPredictionBridge(predictor repository.Predictor, logger *zap.Logger) *PredictionBridge {
	return &PredictionBridge{
		predictor: predictor,
		logger:    logger,
	}
}

// PredictCongestion returns the post-scenario congestion level for one
// segment, always inside [0,1].
func (b *PredictionBridge) PredictCongestion(ctx context.Context, rec domain.FeatureRecord, oldCongestion, reduction float64) float64 {
	if b.predictor != nil {
		pred, err := b.predictor.PredictCongestion(ctx, rec)
		if err == nil {
			return utils.Clamp(pred, 0, 1)
		}
		if errors.Is(err, repository.ErrPredictorUnavailable) {
			b.logger.Debug("predictor unavailable, using heuristic",
				zap.Int("segment_id", rec.SegmentID))
		} else {
			b.logger.Warn("predictor error, using heuristic",
				zap.Int("segment_id", rec.SegmentID), zap.Error(err))
		}
	}
	return HeuristicCongestion(oldCongestion, reduction)
}

// Predict surfaces the raw predictor without the heuristic fallback,
// for the direct prediction endpoint where "model not trained" is a
// caller-visible condition.
func (b *PredictionBridge) Predict(ctx context.Context, rec domain.FeatureRecord) (float64, error) {
	if b.predictor == nil {
		return 0, apperrors.ErrPredictorUnavailable
	}
	pred, err := b.predictor.PredictCongestion(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrPredictorUnavailable) {
			return 0, apperrors.ErrPredictorUnavailable
		}
		return 0, err
	}
	return utils.Clamp(pred, 0, 1), nil
}

// HeuristicCongestion estimates how congestion responds to removing a
// share of vehicle volume.
func HeuristicCongestion(oldCongestion, reduction float64) float64 {
	return utils.Clamp(oldCongestion*(1-reduction*0.5), 0, 1)
}
