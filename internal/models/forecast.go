package models

// ForecastPayload is the decoded Open-Meteo forecast response. It is
// treated as read-only once fetched.
type ForecastPayload struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Timezone  string            `json:"timezone"`
	Current   CurrentConditions `json:"current"`
	Hourly    HourlySeries      `json:"hourly"`
	Daily     DailySeries       `json:"daily"`
}

// CurrentConditions is only meaningful for "now".
type CurrentConditions struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	HumidityPercent     float64 `json:"relative_humidity_2m"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	WeatherCode         int     `json:"weather_code"`
}

// HourlySeries holds parallel arrays indexed by day*24 + hour of day.
type HourlySeries struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	WeatherCode              []int     `json:"weather_code"`
	PrecipitationProbability []*int    `json:"precipitation_probability"`
}

// Len is the number of indices for which time, temperature and weather
// code are all present. Anything at or past Len is "no data".
func (h HourlySeries) Len() int {
	n := len(h.Time)
	if len(h.Temperature) < n {
		n = len(h.Temperature)
	}
	if len(h.WeatherCode) < n {
		n = len(h.WeatherCode)
	}
	return n
}

// Precipitation returns the precipitation probability at i, if the
// upstream sent one.
func (h HourlySeries) Precipitation(i int) (int, bool) {
	if i < 0 || i >= len(h.PrecipitationProbability) || h.PrecipitationProbability[i] == nil {
		return 0, false
	}
	return *h.PrecipitationProbability[i], true
}

// DailySeries has one entry per forecast day.
type DailySeries struct {
	Time        []string  `json:"time"`
	WeatherCode []int     `json:"weather_code"`
	TempMax     []float64 `json:"temperature_2m_max"`
	TempMin     []float64 `json:"temperature_2m_min"`
}

// Len is the number of days for which all daily fields are present.
func (d DailySeries) Len() int {
	n := len(d.Time)
	if len(d.WeatherCode) < n {
		n = len(d.WeatherCode)
	}
	if len(d.TempMax) < n {
		n = len(d.TempMax)
	}
	if len(d.TempMin) < n {
		n = len(d.TempMin)
	}
	return n
}
