package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const geocodeBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// Geocoder resolves place names to coordinates using the Open-Meteo
// geocoding API (no key required).
type Geocoder struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewGeocoder creates a new geocoder. An empty baseURL selects the
// public Open-Meteo endpoint.
func NewGeocoder(baseURL string, logger *slog.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = geocodeBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Geocoder{baseURL: baseURL, client: &http.Client{}, logger: logger}
}

type geocodeResponse struct {
	Results []struct {
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Name        string  `json:"name"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
	} `json:"results"`
}

// Lookup forward-geocodes a place name. A place with no results
// returns (nil, nil).
func (g *Geocoder) Lookup(ctx context.Context, query string) (*Coords, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling geocoding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding API returned %d: %s", resp.StatusCode, string(body))
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Results) == 0 {
		g.logger.Debug("geocode: no results", "query", query)
		return nil, nil
	}

	r := result.Results[0]
	coords := &Coords{
		Lat:         r.Latitude,
		Lon:         r.Longitude,
		Name:        r.Name,
		Country:     r.Country,
		CountryCode: r.CountryCode,
	}
	g.logger.Debug("geocode success", "query", query, "lat", coords.Lat, "lon", coords.Lon)
	return coords, nil
}
