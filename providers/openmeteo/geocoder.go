package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"solar-forecast-service/geocode"
	"solar-forecast-service/models"
)

// Geocoder resolves city names via the Open-Meteo geocoding API. It
// implements geocode.Provider.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Geocoder implements geocode.Provider
var _ geocode.Provider = (*Geocoder)(nil)

// NewGeocoder creates a new Open-Meteo geocoding provider. baseURL may be
// empty to use the public endpoint.
func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = "https://geocoding-api.open-meteo.com/v1"
	}
	return &Geocoder{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (g *Geocoder) Name() string {
	return "Open-Meteo Geocoding"
}

// Lookup resolves a free-text query to ranked city candidates. An empty
// result list is a valid answer; the resolver decides what to make of it.
func (g *Geocoder) Lookup(ctx context.Context, query string) ([]models.CityCandidate, error) {
	endpoint := fmt.Sprintf("%s/search", g.baseURL)
	params := url.Values{}
	params.Add("name", query)
	params.Add("count", "10")
	params.Add("language", "en")
	params.Add("format", "json")

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Parse response
	var response struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	candidates := make([]models.CityCandidate, 0, len(response.Results))
	for _, r := range response.Results {
		candidates = append(candidates, models.CityCandidate{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}

	return candidates, nil
}
