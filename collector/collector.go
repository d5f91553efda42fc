// Package collector keeps stored forecasts current by periodically
// re-fetching irradiance for every known location and recomputing the derived
// metrics with each location's stored home parameters.
package collector

import (
	"context"
	"log"
	"sync"
	"time"

	"solar-forecast-service/api"
	"solar-forecast-service/datasource"
	"solar-forecast-service/forecast"
)

// Refresher manages scheduled forecast refreshes. Manual-refresh cooldowns do
// not apply here; this is process-local scheduled work, not a user action.
type Refresher struct {
	source       datasource.IrradianceSource
	calculator   *forecast.Calculator
	store        *api.ForecastStore
	interval     time.Duration
	fetchTimeout time.Duration
}

// NewRefresher creates a refresher over the given source and store.
func NewRefresher(source datasource.IrradianceSource, calculator *forecast.Calculator, store *api.ForecastStore, interval time.Duration) *Refresher {
	return &Refresher{
		source:       source,
		calculator:   calculator,
		store:        store,
		interval:     interval,
		fetchTimeout: 30 * time.Second,
	}
}

// SetFetchTimeout changes the timeout for provider requests.
func (r *Refresher) SetFetchTimeout(timeout time.Duration) {
	r.fetchTimeout = timeout
}

// Start begins the refresh loop. The returned function stops it and waits
// for any in-progress cycle to finish.
func (r *Refresher) Start(ctx context.Context) func() {
	refreshCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.refreshAll(refreshCtx)
			case <-refreshCtx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// refreshAll re-fetches and recomputes every stored location once.
func (r *Refresher) refreshAll(ctx context.Context) {
	locations := r.store.AllLocations()
	if len(locations) == 0 {
		return
	}
	log.Printf("Refreshing forecasts for %d location(s)...", len(locations))

	for _, location := range locations {
		if ctx.Err() != nil {
			return
		}
		r.refreshOne(ctx, location)
	}
}

// refreshOne performs a single refresh for a location using its stored
// coordinates and home parameters.
func (r *Refresher) refreshOne(ctx context.Context, location string) {
	prev, exists := r.store.GetByLocation(location)
	if !exists {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	data, err := r.source.FetchIrradiance(fetchCtx, prev.Location, prev.Latitude, prev.Longitude)
	if err != nil {
		log.Printf("Error refreshing irradiance for %s from %s: %v", location, r.source.Name(), err)
		return
	}

	result := r.calculator.Compute(
		forecast.Location{Name: prev.Location, Latitude: prev.Latitude, Longitude: prev.Longitude},
		data.Days,
		forecast.Params{RoofAreaM2: prev.RoofAreaM2, PanelEfficiency: prev.PanelEfficiency},
	)
	result.DataMode = prev.DataMode
	r.store.Update(result)
	log.Printf("Refreshed forecast for %s from %s", location, r.source.Name())
}
