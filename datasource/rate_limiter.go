package datasource

import (
	"context"
	"fmt"

	"solar-forecast-service/geocode"
	"solar-forecast-service/models"

	"golang.org/x/time/rate"
)

// RateLimitedIrradianceSource wraps an IrradianceSource with rate limiting
type RateLimitedIrradianceSource struct {
	source  IrradianceSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedIrradianceSource creates a new rate limited irradiance source
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedIrradianceSource(source IrradianceSource, rps float64, burst int) *RateLimitedIrradianceSource {
	return &RateLimitedIrradianceSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchIrradiance fetches irradiance data, respecting rate limits
func (r *RateLimitedIrradianceSource) FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.IrradianceData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying source
	return r.source.FetchIrradiance(ctx, location, lat, lon)
}

// Name returns the source name
func (r *RateLimitedIrradianceSource) Name() string {
	return r.name
}

// RateLimitedGeocodeProvider wraps a geocode.Provider with rate limiting
type RateLimitedGeocodeProvider struct {
	provider geocode.Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedGeocodeProvider creates a new rate limited geocoding provider
func NewRateLimitedGeocodeProvider(provider geocode.Provider, rps float64, burst int) *RateLimitedGeocodeProvider {
	return &RateLimitedGeocodeProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// Lookup resolves city candidates, respecting rate limits
func (r *RateLimitedGeocodeProvider) Lookup(ctx context.Context, query string) ([]models.CityCandidate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Lookup(ctx, query)
}

// Name returns the provider name
func (r *RateLimitedGeocodeProvider) Name() string {
	return r.name
}

// Verify that our rate limited types implement the required interfaces
var (
	_ IrradianceSource = (*RateLimitedIrradianceSource)(nil)
	_ geocode.Provider = (*RateLimitedGeocodeProvider)(nil)
)
