package domain

import (
	"encoding/json"
	"time"
)

// Observation is one fetched snapshot persisted for history queries.
type Observation struct {
	ID        int64           `db:"id" json:"id"`
	Domain    string          `db:"domain" json:"domain"`
	Source    string          `db:"source" json:"source"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	FetchedAt time.Time       `db:"fetched_at" json:"fetched_at"`
}

// SimulationLog records one scenario run for later inspection.
type SimulationLog struct {
	ID                  int64     `db:"id" json:"id"`
	VehicleReduction    float64   `db:"vehicle_reduction" json:"vehicle_reduction"`
	SegmentIDs          []int64   `db:"-" json:"segment_ids"`
	AvgCongestionBefore float64   `db:"avg_congestion_before" json:"avg_congestion_before"`
	AvgCongestionAfter  float64   `db:"avg_congestion_after" json:"avg_congestion_after"`
	AQIBefore           float64   `db:"aqi_before" json:"aqi_before"`
	AQIAfter            float64   `db:"aqi_after" json:"aqi_after"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}
