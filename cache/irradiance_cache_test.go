package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"solar-forecast-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many fetches reach the underlying provider.
type countingSource struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingSource) Name() string { return "Counting" }

func (c *countingSource) FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.err != nil {
		return models.IrradianceData{}, c.err
	}
	return models.IrradianceData{
		Provider: c.Name(),
		Location: location,
		Days:     []models.DailyIrradiance{{Date: "2025-11-09", GhiClearWh: 2450, GhiCloudyWh: 1680}},
	}, nil
}

func (c *countingSource) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestCacheHitSkipsProvider(t *testing.T) {
	source := &countingSource{}
	cached := NewCachedIrradianceSource(source, time.Minute)

	_, err := cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.NoError(t, err)
	_, err = cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.NoError(t, err)

	assert.Equal(t, 1, source.callCount())
	hits, misses := cached.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestCacheKeyedByLocation(t *testing.T) {
	source := &countingSource{}
	cached := NewCachedIrradianceSource(source, time.Minute)

	_, err := cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.NoError(t, err)
	_, err = cached.FetchIrradiance(context.Background(), "London, GB", 51.5074, -0.1278)
	require.NoError(t, err)

	assert.Equal(t, 2, source.callCount())
}

func TestCacheExpiry(t *testing.T) {
	source := &countingSource{}
	cached := NewCachedIrradianceSource(source, 20*time.Millisecond)

	_, err := cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.NoError(t, err)
	assert.Equal(t, 2, source.callCount())
}

func TestCacheErrorNotStored(t *testing.T) {
	source := &countingSource{err: errors.New("provider down")}
	cached := NewCachedIrradianceSource(source, time.Minute)

	_, err := cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.Error(t, err)

	// A failed fetch must not poison the cache; the next call retries.
	source.err = nil
	_, err = cached.FetchIrradiance(context.Background(), "Zagreb, HR", 45.815, 15.9819)
	require.NoError(t, err)
	assert.Equal(t, 2, source.callCount())
}

func TestCacheName(t *testing.T) {
	cached := NewCachedIrradianceSource(&countingSource{}, time.Minute)
	assert.Equal(t, "Counting [Cached]", cached.Name())
}
