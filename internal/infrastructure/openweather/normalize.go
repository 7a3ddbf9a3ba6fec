package openweather

import (
	"fmt"

	"github.com/urbanpulse/backend/internal/domain"
)

// Raw shape for the OpenWeather current-conditions response.
type currentResponse struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Name string `json:"name"`
}

// Normalize extracts the canonical scalar weather object. A response
// missing temperature or humidity is invalid as a whole and triggers
// the mock fallback.
func Normalize(raw *currentResponse, fallbackCity string) (*domain.WeatherReport, error) {
	if raw == nil || raw.Main == nil || raw.Main.Temp == nil || raw.Main.Humidity == nil {
		return nil, fmt.Errorf("openweather: response missing temperature or humidity")
	}

	report := &domain.WeatherReport{
		Temperature: *raw.Main.Temp,
		Humidity:    *raw.Main.Humidity,
		Description: "unknown",
		City:        raw.Name,
		Source:      domain.SourceLive,
	}
	if report.City == "" {
		report.City = fallbackCity
	}
	if len(raw.Weather) > 0 && raw.Weather[0].Description != "" {
		report.Description = raw.Weather[0].Description
	}
	return report, nil
}
