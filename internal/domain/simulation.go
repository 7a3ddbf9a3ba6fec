package domain

import (
	"github.com/paulmach/orb/geojson"
)

// FeatureRecord is the per-segment input handed to the predictor.
type FeatureRecord struct {
	AvgSpeed     float64 `json:"avg_speed"`
	VehicleCount int     `json:"vehicle_count"`
	PM25         float64 `json:"pm25"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	WindSpeed    float64 `json:"wind_speed"`
	Rainfall     float64 `json:"rainfall"`
	SegmentID    int     `json:"segment_id"`
}

// SimulationMetrics compares aggregate conditions before and after a
// scenario. All values are rounded for stable client comparison.
type SimulationMetrics struct {
	AvgCongestionBefore float64 `json:"avg_congestion_before"`
	AvgCongestionAfter  float64 `json:"avg_congestion_after"`
	AvgSpeedBefore      float64 `json:"avg_speed_before"`
	AvgSpeedAfter       float64 `json:"avg_speed_after"`
	AQIBefore           float64 `json:"aqi_before"`
	AQIAfter            float64 `json:"aqi_after"`
}

type SimulationResult struct {
	Before  *geojson.FeatureCollection `json:"before"`
	After   *geojson.FeatureCollection `json:"after"`
	Metrics SimulationMetrics          `json:"metrics"`
}
