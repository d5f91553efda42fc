package datasource

import (
	"context"
	"encoding/json"
	"os"

	"solar-forecast-service/models"
)

// ForecastDays is the horizon every source returns.
const ForecastDays = 7

// Documented fallback values substituted when a single day's live fetch
// fails. Units are Wh/m², same as provider output.
const (
	FallbackClearWh  = 800.0
	FallbackCloudyWh = 400.0
)

// IrradianceSource is an interface for services that supply per-day
// irradiance data for a coordinate pair.
type IrradianceSource interface {
	// FetchIrradiance fetches the 7-day irradiance series for a location.
	FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error)

	// Name returns the source's name
	Name() string
}

// Config represents the application configuration
type Config struct {
	OpenMeteo struct {
		Enabled bool   `json:"enabled"`
		BaseURL string `json:"baseUrl"`
	} `json:"openMeteo"`

	Geocoding struct {
		BaseURL string `json:"baseUrl"`
	} `json:"geocoding"`

	// DataMode selects "cached" (static demo dataset) or "live"
	DataMode string `json:"dataMode"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenMeteo.Enabled = true
	config.DataMode = "cached"
	return config
}
