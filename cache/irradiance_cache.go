package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"solar-forecast-service/datasource"
	"solar-forecast-service/models"
)

// CachedIrradianceSource wraps an IrradianceSource and adds caching
// functionality. A cache hit means no provider call, which is what keeps the
// recalculation path and repeated forecasts inside the rate-limit budget.
type CachedIrradianceSource struct {
	source         datasource.IrradianceSource
	cache          map[string]cacheEntry // key is location:lat:lon
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents a cached irradiance series with its timestamp
type cacheEntry struct {
	Data      models.IrradianceData
	Timestamp time.Time
}

// NewCachedIrradianceSource creates a new cached wrapper around an
// irradiance source
func NewCachedIrradianceSource(source datasource.IrradianceSource, cacheDuration time.Duration) *CachedIrradianceSource {
	return &CachedIrradianceSource{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying source with [Cached] prefix
func (c *CachedIrradianceSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchIrradiance fetches irradiance data, using cache when available
func (c *CachedIrradianceSource) FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error) {
	cacheKey := fmt.Sprintf("%s:%.4f:%.4f", location, lat, lon)

	// First check if we have this data in the cache
	c.mutex.RLock()
	entry, found := c.cache[cacheKey]
	c.mutex.RUnlock()

	// If found and not expired, return the cached data
	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		log.Printf("Irradiance cache HIT for %s from %s (age: %s)",
			location, c.source.Name(), time.Since(entry.Timestamp).Round(time.Second))

		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh data
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	log.Printf("Irradiance cache MISS for %s from %s, fetching fresh data...",
		location, c.source.Name())

	data, err := c.source.FetchIrradiance(ctx, location, lat, lon)
	if err != nil {
		return models.IrradianceData{}, err
	}

	// Store in cache
	c.mutex.Lock()
	c.cache[cacheKey] = cacheEntry{
		Data:      data,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedIrradianceSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedIrradianceSource implements the IrradianceSource interface
var _ datasource.IrradianceSource = (*CachedIrradianceSource)(nil)
