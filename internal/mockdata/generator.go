package mockdata

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/urbanpulse/backend/internal/config"
	"github.com/urbanpulse/backend/internal/domain"
)

// Segments radiate this far from the city center, in degrees.
const segmentReach = 0.02

// Three-tier speed/volume pattern. Segments cycle low/moderate/high
// congestion every three entries so category distributions stay
// stable for assertions.
var trafficTiers = []struct {
	congestion string
	speed      float64
	volume     int
}{
	{"low", 40, 800},
	{"moderate", 25, 1200},
	{"high", 15, 2400},
}

// Generator produces schema-valid synthetic snapshots for every
// domain. Values are randomized, shapes are not.
type Generator struct {
	city config.CityConfig
}

func NewGenerator(city config.CityConfig) *Generator {
	return &Generator{city: city}
}

// Traffic generates n synthetic road segments radiating from the city
// center. n values below 1 are raised to the default of 9.
func (g *Generator) Traffic(n int) *geojson.FeatureCollection {
	if n < 1 {
		n = 9
	}

	fc := domain.NewFeatureCollection()
	for i := 0; i < n; i++ {
		tier := trafficTiers[i%len(trafficTiers)]
		angle := 2 * math.Pi * float64(i) / float64(n)

		line := orb.LineString{
			{g.city.Lon, g.city.Lat},
			{
				g.city.Lon + segmentReach/2*math.Cos(angle),
				g.city.Lat + segmentReach/2*math.Sin(angle),
			},
			{
				g.city.Lon + segmentReach*math.Cos(angle),
				g.city.Lat + segmentReach*math.Sin(angle),
			},
		}

		f := geojson.NewFeature(line)
		f.Properties["segment_id"] = i + 1
		f.Properties["speed"] = tier.speed + rand.Float64()*4 - 2
		f.Properties["congestion"] = tier.congestion
		f.Properties["volume"] = tier.volume + rand.Intn(100)
		f.Properties["source"] = domain.SourceMock
		fc.Append(f)
	}
	return fc
}

// AirQuality generates synthetic monitoring stations around the city
// center spanning several AQI categories.
func (g *Generator) AirQuality() *geojson.FeatureCollection {
	stations := []struct {
		name   string
		dLon   float64
		dLat   float64
		pm25   float64
		jitter float64
	}{
		{"City Center", 0, 0, 28.1, 4},
		{"Industrial Zone", -0.012, 0.006, 48.5, 6},
		{"Park Sensor", 0.012, -0.006, 9.8, 2},
		{"Ring Road", 0.008, 0.010, 22.5, 4},
	}

	fc := domain.NewFeatureCollection()
	for _, st := range stations {
		pm25 := st.pm25 + rand.Float64()*st.jitter - st.jitter/2
		if pm25 < 0.5 {
			pm25 = 0.5
		}

		f := geojson.NewFeature(orb.Point{g.city.Lon + st.dLon, g.city.Lat + st.dLat})
		f.Properties["pm25"] = math.Round(pm25*100) / 100
		f.Properties["aqi"] = math.Round(domain.AQIFromPM25(pm25))
		f.Properties["category"] = domain.AQICategory(pm25)
		f.Properties["station"] = st.name
		f.Properties["source"] = domain.SourceMock
		fc.Append(f)
	}
	return fc
}

// Weather generates the canonical scalar weather object.
func (g *Generator) Weather() *domain.WeatherReport {
	return &domain.WeatherReport{
		Temperature: 25.5,
		Humidity:    65,
		Description: "clear sky",
		City:        g.city.Name,
		Source:      domain.SourceMock,
	}
}

// Environment generates a full ambient snapshot for simulations that
// could not assemble one from live data.
func (g *Generator) Environment() *domain.EnvironmentalSnapshot {
	return &domain.EnvironmentalSnapshot{
		Temperature: 25.5,
		Humidity:    65,
		WindSpeed:   10.0,
		Rainfall:    0.0,
		AQI:         75.0,
		Source:      domain.SourceMock,
	}
}
