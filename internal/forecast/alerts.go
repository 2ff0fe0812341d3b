package forecast

import "github.com/lox/altus/internal/models"

const (
	// TempThreshold is the temperature (°C) above which an hour is flagged.
	TempThreshold = 10.0
	// DefaultAlertHorizon is how many hours ahead alerts look, independent
	// of the displayed window length.
	DefaultAlertHorizon = 4
)

// AlertResult is recomputed on every evaluation and never stored.
type AlertResult struct {
	RainAlert      bool     `json:"rain_alert"`
	RainHourOffset *int     `json:"rain_hour_offset"`
	TempAlert      bool     `json:"temp_alert"`
	HighTemp       *float64 `json:"high_temp"`
}

// Any reports whether either alert fired.
func (r AlertResult) Any() bool {
	return r.RainAlert || r.TempAlert
}

// Evaluate scans horizon hours from dayStart. The first rainy hour sets
// RainHourOffset (1-indexed, "in N hours") and the first hour above the
// threshold sets HighTemp; later hours never overwrite them.
func Evaluate(h models.HourlySeries, dayStart, horizon int) AlertResult {
	var r AlertResult
	n := h.Len()
	for i := 0; i < horizon; i++ {
		idx := dayStart + i
		if idx < 0 || idx >= n {
			continue
		}

		if !r.RainAlert && IsRainCode(h.WeatherCode[idx]) {
			offset := i + 1
			r.RainAlert = true
			r.RainHourOffset = &offset
		}

		if temp := h.Temperature[idx]; !r.TempAlert && temp > TempThreshold {
			r.TempAlert = true
			r.HighTemp = &temp
		}
	}
	return r
}
