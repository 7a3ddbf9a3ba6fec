package refresh

import (
	"context"
	"encoding/json"
	"time"

	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"github.com/urbanpulse/backend/internal/usecase"
	"github.com/urbanpulse/backend/internal/worker"
	"go.uber.org/zap"
)

// Per-domain fetch budget inside one refresh cycle.
const fetchTimeout = 30 * time.Second

// Worker periodically re-fetches every data domain through the
// gateway, keeping the cache warm so request latency stays flat, and
// records each snapshot when persistence is configured.
type Worker struct {
	*worker.BaseWorker
	gateway  *usecase.GatewayUseCase
	obsRepo  repository.ObservationRepository
	interval time.Duration
}

func NewWorker(gateway *usecase.GatewayUseCase, obsRepo repository.ObservationRepository, interval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		BaseWorker: worker.NewBaseWorker("snapshot-refresh", logger),
		gateway:    gateway,
		obsRepo:    obsRepo,
		interval:   interval,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting snapshot refresh worker",
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Warm the cache immediately instead of waiting out the first tick.
	w.refreshAll(ctx)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *Worker) refreshAll(ctx context.Context) {
	for _, dataDomain := range []string{domain.DomainTraffic, domain.DomainAQI, domain.DomainWeather} {
		w.refresh(ctx, dataDomain)
	}
}

func (w *Worker) refresh(ctx context.Context, dataDomain string) {
	logger := w.Logger()

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	payload, source, err := w.gateway.Snapshot(fetchCtx, dataDomain)
	if err != nil {
		logger.Error("Refresh failed",
			zap.String("domain", dataDomain), zap.Error(err))
		return
	}
	logger.Debug("Refreshed snapshot",
		zap.String("domain", dataDomain), zap.String("source", source))

	// A cache hit means nothing new happened since the last cycle.
	if w.obsRepo == nil || source == domain.SourceCache {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to encode snapshot",
			zap.String("domain", dataDomain), zap.Error(err))
		return
	}
	obs := &domain.Observation{
		Domain:    dataDomain,
		Source:    source,
		Payload:   raw,
		FetchedAt: time.Now().UTC(),
	}
	if err := w.obsRepo.SaveObservation(fetchCtx, obs); err != nil {
		logger.Error("Failed to persist observation",
			zap.String("domain", dataDomain), zap.Error(err))
	}
}
