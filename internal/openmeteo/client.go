// Package openmeteo talks to the Open-Meteo geocoding and forecast APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/lox/altus/internal/htmlutil"
	"github.com/lox/altus/internal/metrics"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	serviceGeocoding = "geocoding"
	serviceForecast  = "forecast"

	maxReasonLen = 200
)

var (
	ErrGeocodingUnavailable = errors.New("geocoding unavailable")
	ErrForecastUnavailable  = errors.New("forecast unavailable")
)

// StatusError is returned when Open-Meteo answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Reason)
}

type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// getJSON performs a GET and decodes a 2xx JSON body into dst. Every call
// is counted and timed under the given service label.
func getJSON(ctx context.Context, client *http.Client, service, url string, dst any) error {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.UpstreamRequestsTotal.WithLabelValues(service, status).Inc()
		metrics.UpstreamLatency.WithLabelValues(service).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", service, err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Reason: errorReason(body)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

// errorReason extracts the "reason" Open-Meteo puts in JSON errors, or a
// plain-text summary of whatever else came back.
func errorReason(body []byte) string {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Reason != "" {
		return ae.Reason
	}
	return htmlutil.Summary(string(body), maxReasonLen)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
