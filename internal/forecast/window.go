package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/altus/internal/models"
)

const (
	// ForecastDays is the number of days requested per fetch.
	ForecastDays = 7
	// HoursPerDay is the width of one day block in the hourly series.
	HoursPerDay = 24
	// middayHour is the hourly entry used to represent a future day.
	middayHour = 12
)

var (
	ErrInvalidDayIndex  = errors.New("invalid day index")
	ErrInsufficientData = errors.New("insufficient hourly data")
)

// Snapshot is the "current conditions" panel for a selected day.
type Snapshot struct {
	Temperature     float64 `json:"temperature"`
	WeatherCode     int     `json:"weather_code"`
	Emoji           string  `json:"emoji"`
	WindSpeed       float64 `json:"wind_speed"`
	HumidityPercent float64 `json:"humidity_percent"`
	FeelsLike       float64 `json:"feels_like"`
	// Approximate is set for future days: wind and humidity are today's
	// current values and feels-like is the midday temperature, because the
	// payload has no per-day series for them.
	Approximate bool `json:"approximate"`
}

// DayStartIndex returns the first hourly index of a day block.
func DayStartIndex(day int) (int, error) {
	if day < 0 || day >= ForecastDays {
		return 0, fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidDayIndex, day, ForecastDays-1)
	}
	return day * HoursPerDay, nil
}

// SnapshotFor derives the display snapshot for day. Day 0 uses the current
// block verbatim; later days read the local-midday hourly entry.
func SnapshotFor(p *models.ForecastPayload, day int) (Snapshot, error) {
	start, err := DayStartIndex(day)
	if err != nil {
		return Snapshot{}, err
	}

	if day == 0 {
		c := p.Current
		return Snapshot{
			Temperature:     c.Temperature,
			WeatherCode:     c.WeatherCode,
			Emoji:           Emoji(c.WeatherCode),
			WindSpeed:       c.WindSpeed,
			HumidityPercent: c.HumidityPercent,
			FeelsLike:       c.ApparentTemperature,
		}, nil
	}

	idx := start + middayHour
	if idx >= p.Hourly.Len() {
		return Snapshot{}, fmt.Errorf("%w: day %d needs hourly index %d, have %d", ErrInsufficientData, day, idx, p.Hourly.Len())
	}

	temp := p.Hourly.Temperature[idx]
	code := p.Hourly.WeatherCode[idx]
	return Snapshot{
		Temperature:     temp,
		WeatherCode:     code,
		Emoji:           Emoji(code),
		WindSpeed:       p.Current.WindSpeed,
		HumidityPercent: p.Current.HumidityPercent,
		FeelsLike:       temp,
		Approximate:     true,
	}, nil
}

// HourSlot is one entry of the hourly strip.
type HourSlot struct {
	Index         int     `json:"index"`
	Hour          int     `json:"hour"`
	Temperature   float64 `json:"temperature"`
	WeatherCode   int     `json:"weather_code"`
	Emoji         string  `json:"emoji"`
	PrecipChance  *int    `json:"precipitation_probability"`
	RainAlert     bool    `json:"rain_alert"`
	HighTempAlert bool    `json:"high_temp_alert"`
}

// Class is the display class of the slot. Rain wins when both flags hold.
func (s HourSlot) Class() string {
	switch {
	case s.RainAlert:
		return "rain-alert"
	case s.HighTempAlert:
		return "temp-alert"
	default:
		return ""
	}
}

// HourlySlice returns up to count slots starting at absolute index start.
// Indices past the end of the series are skipped, never padded.
func HourlySlice(h models.HourlySeries, start, count int) []HourSlot {
	n := h.Len()
	first := max(start, 0)
	last := n
	if count < n-start {
		last = start + count
	}
	var slots []HourSlot
	for idx := first; idx < last; idx++ {
		temp := h.Temperature[idx]
		code := h.WeatherCode[idx]
		slot := HourSlot{
			Index:         idx,
			Hour:          hourOf(h.Time[idx], idx),
			Temperature:   temp,
			WeatherCode:   code,
			Emoji:         Emoji(code),
			RainAlert:     IsRainCode(code),
			HighTempAlert: temp > TempThreshold,
		}
		if p, ok := h.Precipitation(idx); ok {
			slot.PrecipChance = &p
		}
		slots = append(slots, slot)
	}
	return slots
}

// hourTimeLayout is the local ISO8601 format Open-Meteo uses for hourly
// times when timezone=auto.
const hourTimeLayout = "2006-01-02T15:04"

func hourOf(ts string, idx int) int {
	if t, err := time.Parse(hourTimeLayout, ts); err == nil {
		return t.Hour()
	}
	return idx % HoursPerDay
}
