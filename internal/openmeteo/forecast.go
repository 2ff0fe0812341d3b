package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lox/altus/internal/forecast"
	"github.com/lox/altus/internal/models"
)

const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m"
	hourlyFields  = "temperature_2m,weather_code,precipitation_probability"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"
)

// ForecastClient fetches the fixed-shape forecast payload for coordinates.
type ForecastClient struct {
	client  *http.Client
	baseURL string
}

// NewForecastClient creates a client for the given forecast endpoint. An
// empty baseURL uses the public Open-Meteo endpoint.
func NewForecastClient(client *http.Client, baseURL string) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastClient{client: client, baseURL: baseURL}
}

// Fetch returns current, hourly and daily blocks for the next
// forecast.ForecastDays days in the location's own timezone.
func (f *ForecastClient) Fetch(ctx context.Context, lat, lon float64) (*models.ForecastPayload, error) {
	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lon))
	q.Set("current", currentFields)
	q.Set("hourly", hourlyFields)
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(forecast.ForecastDays))

	var payload models.ForecastPayload
	if err := getJSON(ctx, f.client, serviceForecast, f.baseURL+"?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrForecastUnavailable, err)
	}
	return &payload, nil
}
