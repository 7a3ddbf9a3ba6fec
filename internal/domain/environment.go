package domain

// WeatherReport is the canonical scalar weather object.
type WeatherReport struct {
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	Source      string  `json:"source"`
}

// EnvironmentalSnapshot bundles the ambient conditions a simulation
// run is evaluated under.
type EnvironmentalSnapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Rainfall    float64 `json:"rainfall"`
	AQI         float64 `json:"aqi"`
	Source      string  `json:"source"`
}
