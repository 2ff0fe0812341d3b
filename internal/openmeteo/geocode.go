package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lox/altus/internal/models"
)

const (
	// SuggestionCount is how many candidates the autocomplete asks for.
	SuggestionCount = 5
	// SearchCount is used by direct search, which takes the first match.
	SearchCount = 1

	geocodingLanguage = "fr"
)

// GeocodingClient resolves free-text place names to locations.
type GeocodingClient struct {
	client  *http.Client
	baseURL string
}

// NewGeocodingClient creates a client for the given search endpoint. An
// empty baseURL uses the public Open-Meteo endpoint.
func NewGeocodingClient(client *http.Client, baseURL string) *GeocodingClient {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &GeocodingClient{client: client, baseURL: baseURL}
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Resolve returns up to maxResults candidates in the order Open-Meteo
// ranks them. No match is an empty slice, not an error.
func (g *GeocodingClient) Resolve(ctx context.Context, query string, maxResults int) ([]models.Location, error) {
	q := url.Values{}
	q.Set("name", query)
	q.Set("count", strconv.Itoa(maxResults))
	q.Set("language", geocodingLanguage)
	q.Set("format", "json")

	var data geocodingResponse
	if err := getJSON(ctx, g.client, serviceGeocoding, g.baseURL+"?"+q.Encode(), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeocodingUnavailable, err)
	}

	locations := make([]models.Location, 0, len(data.Results))
	for _, r := range data.Results {
		locations = append(locations, models.Location{
			Name:      r.Name,
			Admin1:    r.Admin1,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return locations, nil
}
