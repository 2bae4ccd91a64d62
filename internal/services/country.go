package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
)

const countryBaseURL = "https://restcountries.com/v3.1"

// CountryService fetches country facts from the REST Countries API.
type CountryService struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewCountryService creates a country facts client. An empty baseURL
// selects the public REST Countries endpoint.
func NewCountryService(baseURL string, logger *slog.Logger) *CountryService {
	if baseURL == "" {
		baseURL = countryBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CountryService{baseURL: baseURL, client: &http.Client{}, logger: logger}
}

type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Population int64    `json:"population"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

// Lookup fetches facts for a country by name. If the name lookup 404s
// it retries treating the query as a capital city, which covers inputs
// like "Paris". An unresolvable query returns (nil, nil).
func (c *CountryService) Lookup(ctx context.Context, query string) (*Country, error) {
	country, err := c.fetch(ctx, "/name/"+url.PathEscape(query))
	if err != nil {
		return nil, err
	}
	if country == nil {
		country, err = c.fetch(ctx, "/capital/"+url.PathEscape(query))
		if err != nil {
			return nil, err
		}
	}
	return country, nil
}

func (c *CountryService) fetch(ctx context.Context, path string) (*Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling country API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("country API returned %d: %s", resp.StatusCode, string(body))
	}

	var results []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	country := &Country{
		Name:       r.Name.Common,
		Region:     r.Region,
		Subregion:  r.Subregion,
		Population: r.Population,
	}
	if len(r.Capital) > 0 {
		country.Capital = r.Capital[0]
	}
	for _, lang := range r.Languages {
		country.Languages = append(country.Languages, lang)
	}
	sort.Strings(country.Languages)
	for _, cur := range r.Currencies {
		country.Currency = cur.Name
		break
	}

	c.logger.Debug("country lookup", "name", country.Name, "capital", country.Capital)
	return country, nil
}
