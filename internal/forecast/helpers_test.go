package forecast

import (
	"fmt"

	"github.com/lox/altus/internal/models"
)

// testPayload builds a full 7-day payload. Hourly temperature at index i is
// float64(i) / 10 and every code is overcast, so individual tests can poke
// specific indices.
func testPayload() *models.ForecastPayload {
	n := ForecastDays * HoursPerDay
	h := models.HourlySeries{
		Time:                     make([]string, n),
		Temperature:              make([]float64, n),
		WeatherCode:              make([]int, n),
		PrecipitationProbability: make([]*int, n),
	}
	for i := 0; i < n; i++ {
		h.Time[i] = fmt.Sprintf("2026-10-%02dT%02d:00", 12+i/HoursPerDay, i%HoursPerDay)
		h.Temperature[i] = float64(i) / 10
		h.WeatherCode[i] = 3
		p := i % 100
		h.PrecipitationProbability[i] = &p
	}

	d := models.DailySeries{}
	for i := 0; i < ForecastDays; i++ {
		d.Time = append(d.Time, fmt.Sprintf("2026-10-%02d", 12+i))
		d.WeatherCode = append(d.WeatherCode, 3)
		d.TempMax = append(d.TempMax, 20+float64(i))
		d.TempMin = append(d.TempMin, 5+float64(i))
	}

	return &models.ForecastPayload{
		Timezone: "Europe/Paris",
		Current: models.CurrentConditions{
			Time:                "2026-10-12T09:15",
			Temperature:         14.6,
			ApparentTemperature: 13.2,
			HumidityPercent:     81,
			WindSpeed:           12.4,
			WeatherCode:         2,
		},
		Hourly: h,
		Daily:  d,
	}
}
