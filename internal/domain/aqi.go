package domain

// US EPA PM2.5 breakpoint table. Each band maps a concentration range
// onto an AQI range linearly.
var aqiBreakpoints = []struct {
	cLow, cHigh float64
	iLow, iHigh float64
	category    string
}{
	{0, 12, 0, 50, "Good"},
	{12, 35.4, 50, 100, "Moderate"},
	{35.4, 55.4, 100, 150, "Unhealthy for Sensitive Groups"},
	{55.4, 150.4, 150, 200, "Unhealthy"},
	{150.4, 250.4, 200, 300, "Very Unhealthy"},
	{250.4, 350.4, 300, 400, "Hazardous"},
}

// AQIFromPM25 converts a PM2.5 concentration (µg/m³) to an AQI value.
// Band edges land exactly on the index boundary: 12.0 -> 50, 35.4 -> 100.
// Concentrations beyond the table saturate at 400.
func AQIFromPM25(pm25 float64) float64 {
	if pm25 <= 0 {
		return 0
	}
	for _, bp := range aqiBreakpoints {
		if pm25 <= bp.cHigh {
			return bp.iLow + (pm25-bp.cLow)/(bp.cHigh-bp.cLow)*(bp.iHigh-bp.iLow)
		}
	}
	return 400
}

// AQICategory returns the label for a PM2.5 concentration using the
// same breakpoints as AQIFromPM25.
func AQICategory(pm25 float64) string {
	for _, bp := range aqiBreakpoints {
		if pm25 <= bp.cHigh {
			return bp.category
		}
	}
	return "Hazardous"
}
