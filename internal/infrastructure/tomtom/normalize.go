package tomtom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain"
)

// Raw shapes for the TomTom flow segment response. Segment geometry
// arrives as a well-known-text LINESTRING.
type flowResponse struct {
	Segments []flowSegment `json:"segments"`
}

type flowSegment struct {
	Shape        string   `json:"shape"`
	CurrentSpeed *float64 `json:"currentSpeed"`
	FreeFlow     *float64 `json:"freeFlowSpeed"`
}

// Speed bands used to classify congestion when the vendor reports no
// jam factor.
const (
	speedHighCongestionMax = 20.0
	speedModerateMax       = 40.0
)

// Normalize converts a TomTom flow response into the canonical traffic
// FeatureCollection. Segments with an unparsable shape or a missing
// speed are dropped individually.
func Normalize(raw *flowResponse) *geojson.FeatureCollection {
	fc := domain.NewFeatureCollection()
	if raw == nil {
		return fc
	}

	for _, seg := range raw.Segments {
		if seg.CurrentSpeed == nil {
			continue
		}

		geom, err := wkt.Unmarshal(seg.Shape)
		if err != nil {
			continue
		}
		line, ok := geom.(orb.LineString)
		if !ok || len(line) < 2 {
			continue
		}

		f := geojson.NewFeature(line)
		f.Properties["speed"] = *seg.CurrentSpeed
		f.Properties["congestion"] = congestionFromSpeed(*seg.CurrentSpeed)
		if seg.FreeFlow != nil {
			f.Properties["free_flow_speed"] = *seg.FreeFlow
		}
		fc.Append(f)
	}
	return fc
}

func congestionFromSpeed(speed float64) string {
	switch {
	case speed < speedHighCongestionMax:
		return "high"
	case speed < speedModerateMax:
		return "moderate"
	default:
		return "low"
	}
}
