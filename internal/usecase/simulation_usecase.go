package usecase

import (
	"context"
	"math"
	"time"

	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	apperrors "github.com/urbanpulse/backend/internal/pkg/errors"
	"github.com/urbanpulse/backend/internal/pkg/utils"
	"github.com/urbanpulse/backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// A stopped vehicle still occupies the road, so a segment never drops
// below one vehicle, and congested roads never model below walking-pace
// speed.
const (
	minVehicleCount = 1
	minSpeedKmh     = 5.0
)

// SimulationUseCase runs what-if traffic scenarios: remove a share of
// vehicles and estimate the resulting congestion, speed and air
// quality. The input snapshot is never mutated; before and after are
// independent projections.
type SimulationUseCase struct {
	gateway *GatewayUseCase
	bridge  *PredictionBridge
	obsRepo repository.ObservationRepository
	logger  *zap.Logger
}

func NewSimulationUseCase(gateway *GatewayUseCase, bridge *PredictionBridge, obsRepo repository.ObservationRepository, logger *zap.Logger) *SimulationUseCase {
	return &SimulationUseCase{
		gateway: gateway,
		bridge:  bridge,
		obsRepo: obsRepo,
		logger:  logger,
	}
}

// Simulate executes one scenario. The reduction is validated before any
// upstream work happens.
func (uc *SimulationUseCase) Simulate(ctx context.Context, req dto.SimulationRequest) (*domain.SimulationResult, error) {
	reduction, err := normalizeReduction(req.VehicleReduction)
	if err != nil {
		return nil, err
	}

	segments := uc.fetchSegments(ctx)
	if len(segments) == 0 {
		// One retry covers a transient upstream hiccup; the mock
		// fallback makes a second empty result almost impossible.
		segments = uc.fetchSegments(ctx)
	}
	if len(segments) == 0 {
		return nil, apperrors.ErrNoTrafficData
	}

	if len(req.SegmentIDs) > 0 {
		segments = filterSegments(segments, req.SegmentIDs)
		if len(segments) == 0 {
			return nil, apperrors.ErrEmptySegmentFilter
		}
	}

	env := uc.gateway.Environment(ctx)

	after := make([]domain.Segment, len(segments))
	for i, seg := range segments {
		after[i] = uc.transformSegment(ctx, seg, reduction, env)
	}

	metrics := buildMetrics(segments, after, env.AQI)
	result := &domain.SimulationResult{
		Before:  domain.ToFeatureCollection(segments),
		After:   domain.ToFeatureCollection(after),
		Metrics: metrics,
	}

	uc.saveLog(req, segments, metrics)
	return result, nil
}

// Predict exposes a single-segment prediction without running a full
// scenario.
func (uc *SimulationUseCase) Predict(ctx context.Context, req dto.PredictRequest) (float64, error) {
	return uc.bridge.Predict(ctx, req.ToFeatureRecord())
}

// normalizeReduction maps the accepted input forms onto a fraction:
// [0,1] passes through, (1,100] is read as a percentage.
func normalizeReduction(v float64) (float64, error) {
	if v < 0 || v > 100 {
		return 0, apperrors.ErrInvalidReduction
	}
	if v > 1 {
		return v / 100, nil
	}
	return v, nil
}

func (uc *SimulationUseCase) fetchSegments(ctx context.Context) []domain.Segment {
	fc, source := uc.gateway.Traffic(ctx)
	segments := domain.ToSegments(fc)
	uc.logger.Debug("projected traffic snapshot",
		zap.String("source", source), zap.Int("segments", len(segments)))
	return segments
}

func filterSegments(segments []domain.Segment, ids []int) []domain.Segment {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	kept := segments[:0:0]
	for _, seg := range segments {
		if _, ok := wanted[seg.ID]; ok {
			kept = append(kept, seg)
		}
	}
	return kept
}

func (uc *SimulationUseCase) transformSegment(ctx context.Context, seg domain.Segment, reduction float64, env *domain.EnvironmentalSnapshot) domain.Segment {
	newCount := int(math.Round(float64(seg.VehicleCount) * (1 - reduction)))
	if newCount < minVehicleCount {
		newCount = minVehicleCount
	}

	rec := domain.FeatureRecord{
		AvgSpeed:     seg.AvgSpeed,
		VehicleCount: newCount,
		PM25:         env.AQI * 0.5,
		Temperature:  env.Temperature,
		Humidity:     env.Humidity,
		WindSpeed:    env.WindSpeed,
		Rainfall:     env.Rainfall,
		SegmentID:    seg.ID,
	}
	newCongestion := utils.RoundTo(uc.bridge.PredictCongestion(ctx, rec, seg.CongestionLevel, reduction), 3)
	newSpeed := utils.RoundTo(math.Max(minSpeedKmh, seg.AvgSpeed*(1-newCongestion*0.3)), 2)

	out := seg
	out.VehicleCount = newCount
	out.CongestionLevel = newCongestion
	out.AvgSpeed = newSpeed
	return out
}

func buildMetrics(before, after []domain.Segment, aqiBefore float64) domain.SimulationMetrics {
	congBefore := make([]float64, len(before))
	congAfter := make([]float64, len(after))
	speedBefore := make([]float64, len(before))
	speedAfter := make([]float64, len(after))
	for i := range before {
		congBefore[i] = before[i].CongestionLevel
		speedBefore[i] = before[i].AvgSpeed
	}
	for i := range after {
		congAfter[i] = after[i].CongestionLevel
		speedAfter[i] = after[i].AvgSpeed
	}

	avgCongBefore := utils.Mean(congBefore)
	avgCongAfter := utils.Mean(congAfter)

	// Lower congestion means fewer idling engines; AQI improves in
	// proportion to the mean congestion around the scenario.
	impact := (avgCongBefore + avgCongAfter) / 2
	aqiAfter := math.Max(0, aqiBefore*(1-impact*0.1))

	return domain.SimulationMetrics{
		AvgCongestionBefore: utils.RoundTo(avgCongBefore, 3),
		AvgCongestionAfter:  utils.RoundTo(avgCongAfter, 3),
		AvgSpeedBefore:      utils.RoundTo(utils.Mean(speedBefore), 2),
		AvgSpeedAfter:       utils.RoundTo(utils.Mean(speedAfter), 2),
		AQIBefore:           utils.RoundTo(aqiBefore, 1),
		AQIAfter:            utils.RoundTo(aqiAfter, 1),
	}
}

// saveLog records the run without blocking the response path. Failures
// are logged and dropped, persistence is best effort.
func (uc *SimulationUseCase) saveLog(req dto.SimulationRequest, segments []domain.Segment, metrics domain.SimulationMetrics) {
	if uc.obsRepo == nil {
		return
	}
	ids := make([]int64, len(segments))
	for i, seg := range segments {
		ids[i] = int64(seg.ID)
	}
	entry := &domain.SimulationLog{
		VehicleReduction:    req.VehicleReduction,
		SegmentIDs:          ids,
		AvgCongestionBefore: metrics.AvgCongestionBefore,
		AvgCongestionAfter:  metrics.AvgCongestionAfter,
		AQIBefore:           metrics.AQIBefore,
		AQIAfter:            metrics.AQIAfter,
		CreatedAt:           time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.obsRepo.SaveSimulationLog(ctx, entry); err != nil {
			uc.logger.Warn("failed to persist simulation log", zap.Error(err))
		}
	}()
}
