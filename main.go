package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"solar-forecast-service/api"
	"solar-forecast-service/cache"
	"solar-forecast-service/collector"
	"solar-forecast-service/datasource"
	"solar-forecast-service/forecast"
	"solar-forecast-service/geocode"
	"solar-forecast-service/providers/openmeteo"
	"solar-forecast-service/summary"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	updateInterval := flag.Duration("update", 30*time.Minute, "Forecast refresh interval")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable provider rate limiting")
	flag.Parse()

	// Load configuration; a missing file falls back to cached-mode defaults
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Printf("Warning: could not load %s (%v), using defaults", *configFile, err)
		config = datasource.DefaultConfig()
	}

	// Cached-mode source is always available; no key, no network
	cached := datasource.NewStaticSource()

	// Live irradiance source (Open-Meteo) if enabled
	var live datasource.IrradianceSource
	if config.OpenMeteo.Enabled {
		liveSource := openmeteo.NewSource(config.OpenMeteo.BaseURL)
		if *enableRateLimiting {
			// Open-Meteo's free tier tolerates modest traffic; half a call
			// per second with small bursts is well inside it
			live = datasource.NewRateLimitedIrradianceSource(liveSource, 0.5, 3)
			log.Println("Applied rate limiting to Open-Meteo source")
		} else {
			live = liveSource
		}
		// Irradiance barely changes inside an hour; cache to spare the API
		live = cache.NewCachedIrradianceSource(live, time.Hour)
	}

	// Geocoding: Open-Meteo geocoder behind the debouncing resolver
	geocoder := openmeteo.NewGeocoder(config.Geocoding.BaseURL)
	var provider geocode.Provider = geocoder
	if *enableRateLimiting {
		provider = datasource.NewRateLimitedGeocodeProvider(geocoder, 1.0, 5)
	}
	resolver := geocode.NewResolver(provider)

	// Optional AI summary boundary
	var summarizer *summary.Client
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		summarizer = summary.NewClient(key, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL"))
		log.Println("AI summary boundary enabled")
	}

	calculator := forecast.NewCalculator()
	store := api.NewForecastStore()
	server := api.NewServer(store, calculator, resolver, cached, live, summarizer, *port)

	// Background refresher keeps stored forecasts current in live mode
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stopRefresher func()
	if live != nil && strings.EqualFold(config.DataMode, "live") {
		refresher := collector.NewRefresher(live, calculator, store, *updateInterval)
		stopRefresher = refresher.Start(ctx)
		log.Printf("Background refresher running every %s", *updateInterval)
	}

	// Periodically prune forecasts that were never refreshed
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := store.PruneOld(48 * time.Hour); n > 0 {
					log.Printf("Pruned %d stale forecast(s)", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	log.Printf("Shutting down due to %s signal", sig)

	cancel()
	if stopRefresher != nil {
		stopRefresher()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
