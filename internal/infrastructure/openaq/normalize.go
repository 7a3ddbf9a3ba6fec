package openaq

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/domain"
)

// Raw shapes for the OpenAQ /latest response.
type latestResponse struct {
	Results []station `json:"results"`
}

type station struct {
	Location     string        `json:"location"`
	Coordinates  *coordinates  `json:"coordinates"`
	Measurements []measurement `json:"measurements"`
}

type coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type measurement struct {
	Parameter string   `json:"parameter"`
	Value     *float64 `json:"value"`
}

// Normalize converts an OpenAQ response into the canonical AQI
// FeatureCollection. Stations without coordinates or a PM2.5
// measurement are dropped individually.
func Normalize(raw *latestResponse) *geojson.FeatureCollection {
	fc := domain.NewFeatureCollection()
	if raw == nil {
		return fc
	}

	for _, st := range raw.Results {
		if st.Coordinates == nil || st.Coordinates.Latitude == nil || st.Coordinates.Longitude == nil {
			continue
		}

		var pm25 *float64
		for _, m := range st.Measurements {
			if m.Parameter == "pm25" && m.Value != nil {
				pm25 = m.Value
				break
			}
		}
		if pm25 == nil {
			continue
		}

		name := st.Location
		if name == "" {
			name = "Unknown Station"
		}

		f := geojson.NewFeature(orb.Point{*st.Coordinates.Longitude, *st.Coordinates.Latitude})
		f.Properties["pm25"] = math.Round(*pm25*100) / 100
		f.Properties["aqi"] = math.Round(domain.AQIFromPM25(*pm25))
		f.Properties["category"] = domain.AQICategory(*pm25)
		f.Properties["station"] = name
		fc.Append(f)
	}
	return fc
}
