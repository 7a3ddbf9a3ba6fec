package here

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain"
)

// Raw shapes for the HERE flow response. The tree is deeply nested:
// roadways -> roads -> flow item groups -> flow items.
type flowResponse struct {
	RWS []roadwayGroup `json:"RWS"`
}

type roadwayGroup struct {
	RW []roadway `json:"RW"`
}

type roadway struct {
	FIS []flowItemGroup `json:"FIS"`
}

type flowItemGroup struct {
	FI []flowItem `json:"FI"`
}

type flowItem struct {
	SHP []shapePoint  `json:"SHP"`
	CF  []currentFlow `json:"CF"`
}

// shapePoint carries one "lat,lon" pair; GeoJSON wants [lon, lat].
type shapePoint struct {
	Value string `json:"value"`
}

type currentFlow struct {
	SU *float64 `json:"SU"` // speed, uncapped
	JF *float64 `json:"JF"` // jam factor
}

// Normalize converts a HERE flow response into the canonical traffic
// FeatureCollection. Flow items without at least two usable shape
// points are dropped; every other extraction failure skips only the
// record it occurred in.
func Normalize(raw *flowResponse) *geojson.FeatureCollection {
	fc := domain.NewFeatureCollection()
	if raw == nil {
		return fc
	}

	for _, rws := range raw.RWS {
		for _, rw := range rws.RW {
			for _, fis := range rw.FIS {
				for _, fi := range fis.FI {
					if f := normalizeFlowItem(fi); f != nil {
						fc.Append(f)
					}
				}
			}
		}
	}
	return fc
}

func normalizeFlowItem(fi flowItem) *geojson.Feature {
	line := make(orb.LineString, 0, len(fi.SHP))
	for _, shp := range fi.SHP {
		if pt, ok := parseShapePoint(shp.Value); ok {
			line = append(line, pt)
		}
	}
	if len(line) < 2 {
		return nil
	}

	f := geojson.NewFeature(line)
	f.Properties["congestion"] = "unknown"

	for _, cf := range fi.CF {
		if cf.SU != nil {
			f.Properties["speed"] = *cf.SU
		}
		if cf.JF != nil {
			f.Properties["congestion"] = congestionFromJamFactor(*cf.JF)
		}
	}
	return f
}

func parseShapePoint(value string) (orb.Point, bool) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	if len(parts) != 2 {
		return orb.Point{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, false
	}
	return orb.Point{lon, lat}, true
}

func congestionFromJamFactor(jf float64) string {
	switch {
	case jf < 0.3:
		return "low"
	case jf < 0.7:
		return "moderate"
	default:
		return "high"
	}
}
