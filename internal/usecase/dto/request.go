package dto

import (
	"github.com/urbanpulse/backend/internal/domain"
)

// SimulationRequest is the /simulate body. VehicleReduction accepts
// either a fraction in [0,1] or a percentage in (1,100].
type SimulationRequest struct {
	VehicleReduction float64 `json:"vehicle_reduction" validate:"gte=0,lte=100"`
	SegmentIDs       []int   `json:"segment_ids,omitempty"`
}

// PredictRequest is the /predict body. Pointer fields distinguish a
// missing feature from a zero value.
type PredictRequest struct {
	AvgSpeed     *float64 `json:"avg_speed" validate:"required"`
	VehicleCount *int     `json:"vehicle_count" validate:"required"`
	PM25         *float64 `json:"pm25" validate:"required"`
	Temperature  *float64 `json:"temperature" validate:"required"`
	Humidity     *float64 `json:"humidity" validate:"required"`
	WindSpeed    *float64 `json:"wind_speed"`
	Rainfall     *float64 `json:"rainfall"`
	SegmentID    int      `json:"segment_id"`
}

func (r PredictRequest) ToFeatureRecord() domain.FeatureRecord {
	rec := domain.FeatureRecord{
		AvgSpeed:     *r.AvgSpeed,
		VehicleCount: *r.VehicleCount,
		PM25:         *r.PM25,
		Temperature:  *r.Temperature,
		Humidity:     *r.Humidity,
		SegmentID:    r.SegmentID,
	}
	if r.WindSpeed != nil {
		rec.WindSpeed = *r.WindSpeed
	}
	if r.Rainfall != nil {
		rec.Rainfall = *r.Rainfall
	}
	return rec
}
