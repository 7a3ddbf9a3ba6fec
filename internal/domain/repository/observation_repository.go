package repository

import (
	"context"
	"time"

	"github.com/urbanpulse/backend/internal/domain"
)

// ObservationRepository persists fetched snapshots and simulation runs.
// Persistence is optional, the process runs fully without it.
type ObservationRepository interface {
	SaveObservation(ctx context.Context, obs *domain.Observation) error
	GetHistory(ctx context.Context, dataDomain string, from, to time.Time) ([]domain.Observation, error)
	SaveSimulationLog(ctx context.Context, entry *domain.SimulationLog) error
	Health(ctx context.Context) error
}
