package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Segment is one simulation-addressable stretch of road.
type Segment struct {
	ID              int
	Geometry        orb.Geometry
	AvgSpeed        float64
	VehicleCount    int
	CongestionLevel float64
	Extra           geojson.Properties
}

// Congestion label thresholds, shared by the traffic normalizers and
// the projector so labels and numeric levels always round-trip.
const (
	congestionLowMax      = 0.3
	congestionModerateMax = 0.7
)

// Fallback values for segments whose source lacks the property.
const (
	defaultAvgSpeed        = 30.0
	defaultVehicleCount    = 100
	defaultCongestionLevel = 0.5
)

// CongestionLevelFromLabel maps a label to its numeric level.
// Unrecognized labels map to the moderate midpoint.
func CongestionLevelFromLabel(label string) float64 {
	switch label {
	case "low":
		return 0.2
	case "moderate":
		return 0.5
	case "high":
		return 0.8
	default:
		return defaultCongestionLevel
	}
}

// CongestionLabel re-derives the label from a numeric level.
func CongestionLabel(level float64) string {
	switch {
	case level < congestionLowMax:
		return "low"
	case level < congestionModerateMax:
		return "moderate"
	default:
		return "high"
	}
}

// ToSegments projects a traffic FeatureCollection onto a flat segment
// list. Features without LineString geometry are skipped. Segment ids
// prefer an explicit property and fall back to the 1-based position,
// which keeps round-trips within one snapshot stable.
func ToSegments(fc *geojson.FeatureCollection) []Segment {
	if fc == nil {
		return nil
	}
	segments := make([]Segment, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f == nil {
			continue
		}
		line, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}

		props := f.Properties
		id, ok := IntProp(props, "segment_id", "id")
		if !ok {
			id = i + 1
		}

		speed, ok := FloatProp(props, "avg_speed", "speed")
		if !ok {
			speed = defaultAvgSpeed
		}

		count, ok := IntProp(props, "vehicle_count", "volume")
		if !ok {
			count = defaultVehicleCount
		}

		level, ok := FloatProp(props, "congestion_level", "congestion")
		if !ok {
			if label, found := StringProp(props, "congestion_level", "congestion"); found {
				level = CongestionLevelFromLabel(label)
			} else {
				level = defaultCongestionLevel
			}
		}

		extra := make(geojson.Properties, len(props))
		for k, v := range props {
			extra[k] = v
		}

		segments = append(segments, Segment{
			ID:              id,
			Geometry:        line,
			AvgSpeed:        speed,
			VehicleCount:    count,
			CongestionLevel: level,
			Extra:           extra,
		})
	}
	return segments
}

// ToFeatureCollection is the inverse projection. Both the numeric
// congestion level and its label are emitted, consumers may rely on
// either form.
func ToFeatureCollection(segments []Segment) *geojson.FeatureCollection {
	fc := NewFeatureCollection()
	for _, seg := range segments {
		f := geojson.NewFeature(seg.Geometry)
		for k, v := range seg.Extra {
			f.Properties[k] = v
		}
		// Drop vendor alias keys carried over in Extra; they would
		// otherwise shadow the canonical values on re-projection.
		delete(f.Properties, "speed")
		delete(f.Properties, "volume")
		delete(f.Properties, "id")
		f.Properties["segment_id"] = seg.ID
		f.Properties["avg_speed"] = seg.AvgSpeed
		f.Properties["vehicle_count"] = seg.VehicleCount
		f.Properties["congestion_level"] = seg.CongestionLevel
		f.Properties["congestion"] = CongestionLabel(seg.CongestionLevel)
		fc.Append(f)
	}
	return fc
}
