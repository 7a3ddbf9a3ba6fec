package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/urbanpulse/backend/internal/domain"
	"github.com/urbanpulse/backend/internal/domain/repository"
	"go.uber.org/zap"
)

type observationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewObservationRepository persists fetched snapshots and simulation
// runs for the history endpoints. Schema:
//
//	observations(id, domain, source, payload jsonb, fetched_at)
//	simulation_logs(id, vehicle_reduction, segment_ids int[],
//	                avg_congestion_before, avg_congestion_after,
//	                aqi_before, aqi_after, created_at)
func NewObservationRepository(db *DB, logger *zap.Logger) repository.ObservationRepository {
	return &observationRepository{db: db, logger: logger}
}

func (r *observationRepository) SaveObservation(ctx context.Context, obs *domain.Observation) error {
	query := `
		INSERT INTO observations (domain, source, payload, fetched_at)
		VALUES ($1, $2, $3, $4)
	`

	fetchedAt := obs.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	if _, err := r.db.ExecContext(ctx, query, obs.Domain, obs.Source, []byte(obs.Payload), fetchedAt); err != nil {
		return fmt.Errorf("postgres: save observation: %w", err)
	}
	return nil
}

func (r *observationRepository) GetHistory(ctx context.Context, dataDomain string, from, to time.Time) ([]domain.Observation, error) {
	query := `
		SELECT id, domain, source, payload, fetched_at
		FROM observations
		WHERE domain = $1 AND fetched_at BETWEEN $2 AND $3
		ORDER BY fetched_at DESC
		LIMIT 100
	`

	var results []domain.Observation
	if err := r.db.SelectContext(ctx, &results, query, dataDomain, from, to); err != nil {
		return nil, fmt.Errorf("postgres: query observations: %w", err)
	}
	return results, nil
}

func (r *observationRepository) SaveSimulationLog(ctx context.Context, entry *domain.SimulationLog) error {
	query := `
		INSERT INTO simulation_logs (
			vehicle_reduction, segment_ids,
			avg_congestion_before, avg_congestion_after,
			aqi_before, aqi_after, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.VehicleReduction,
		pq.Array(entry.SegmentIDs),
		entry.AvgCongestionBefore,
		entry.AvgCongestionAfter,
		entry.AQIBefore,
		entry.AQIAfter,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: save simulation log: %w", err)
	}
	return nil
}

func (r *observationRepository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}
