package main

import (
	"context"
	"fmt"
	"time"

	"solar-forecast-service/cache"
	"solar-forecast-service/datasource"
)

func main() {
	fmt.Println("=== Running Irradiance Cache Test ===")
	fmt.Println("This will demonstrate how caching works with multiple requests")
	fmt.Println("The test will take about 15 seconds to complete...")
	fmt.Println()

	// Set a short cache duration for demonstration purposes
	cacheDuration := 10 * time.Second // Shorter for quicker demo

	// The static dataset needs no API keys, so the demo runs offline
	source := datasource.NewStaticSource()
	cachedSource := cache.NewCachedIrradianceSource(source, cacheDuration)
	fmt.Println("Added static irradiance source with 10-second cache")

	ctx := context.Background()
	locations := []site{
		{"Zagreb, HR", 45.8150, 15.9819},
		{"Split, HR", 43.5081, 16.4402},
	}

	fmt.Println("\n*** First Request - Should be cache misses ***")
	makeRequests(ctx, cachedSource, locations)

	fmt.Println("\n*** Second Request - Should use cached data ***")
	makeRequests(ctx, cachedSource, locations)

	fmt.Println("\n*** Third Request - Still using cached data ***")
	makeRequests(ctx, cachedSource, locations)

	fmt.Println("\nWaiting for cache to expire (10 seconds)...")
	time.Sleep(cacheDuration + 1*time.Second)

	fmt.Println("\n*** After Expiry - Should be cache misses again ***")
	makeRequests(ctx, cachedSource, locations)

	// Each location should have 2 hits and 2 misses
	hits, misses := cachedSource.CacheStats()
	fmt.Printf("\nStats for %s: %d cache hits, %d cache misses\n",
		cachedSource.Name(), hits, misses)

	fmt.Println("\n=== Irradiance Cache Test Complete ===")
}

type site struct {
	name string
	lat  float64
	lon  float64
}

func makeRequests(ctx context.Context, source datasource.IrradianceSource, locations []site) {
	for _, loc := range locations {
		data, err := source.FetchIrradiance(ctx, loc.name, loc.lat, loc.lon)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("Got %d day(s) from %s for %s, first day clear-sky %.0f Wh/m²\n",
			len(data.Days), data.Provider, loc.name, data.Days[0].GhiClearWh)
	}
}
