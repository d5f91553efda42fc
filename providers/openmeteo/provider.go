package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"solar-forecast-service/datasource"
	"solar-forecast-service/models"
)

// Source fetches daily irradiance from the Open-Meteo forecast API. It
// implements datasource.IrradianceSource.
type Source struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Source implements datasource.IrradianceSource
var _ datasource.IrradianceSource = (*Source)(nil)

// NewSource creates a new Open-Meteo irradiance source. Open-Meteo needs no
// API key. baseURL may be empty to use the public endpoint.
func NewSource(baseURL string) *Source {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1"
	}
	return &Source{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the source name
func (s *Source) Name() string {
	return "Open-Meteo"
}

// dailyResponse represents the API response structure for a daily query
type dailyResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Daily     struct {
		Time                  []string  `json:"time"`
		ShortwaveRadiationSum []float64 `json:"shortwave_radiation_sum"` // MJ/m²
		Sunrise               []string  `json:"sunrise"`                 // ISO local, e.g. "2025-11-09T06:47"
		Sunset                []string  `json:"sunset"`
	} `json:"daily"`
}

// megajoulesToWattHours converts the API's MJ/m² daily sums to Wh/m².
const megajoulesToWattHours = 277.778

// FetchIrradiance fetches the 7-day irradiance series for a coordinate pair.
// Each day is requested separately; a failed day is filled with the
// documented fallback constants instead of aborting the whole series.
func (s *Source) FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error) {
	data := models.IrradianceData{
		Provider:  s.Name(),
		Location:  location,
		Latitude:  lat,
		Longitude: lon,
		Days:      make([]models.DailyIrradiance, 0, datasource.ForecastDays),
	}

	start := time.Now()
	for i := 0; i < datasource.ForecastDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")

		day, err := s.fetchDay(ctx, lat, lon, date)
		if err != nil {
			// A whole-series abort on one bad day would waste the six good
			// ones; substitute the fallback values and keep going.
			if ctx.Err() != nil {
				return models.IrradianceData{}, ctx.Err()
			}
			log.Printf("Open-Meteo fetch failed for %s, using fallback values: %v", date, err)
			day = models.DailyIrradiance{
				Date:         date,
				GhiClearWh:   datasource.FallbackClearWh,
				GhiCloudyWh:  datasource.FallbackCloudyWh,
				Sunrise:      "06:00",
				Sunset:       "18:00",
				UsedFallback: true,
			}
		}
		data.Days = append(data.Days, day)
	}

	return data, nil
}

// fetchDay requests the daily radiation summary for a single date.
func (s *Source) fetchDay(ctx context.Context, lat, lon float64, date string) (models.DailyIrradiance, error) {
	endpoint := fmt.Sprintf("%s/forecast", s.baseURL)
	params := url.Values{}
	params.Add("latitude", fmt.Sprintf("%.4f", lat))
	params.Add("longitude", fmt.Sprintf("%.4f", lon))
	params.Add("daily", "shortwave_radiation_sum,sunrise,sunset")
	params.Add("timezone", "auto")
	params.Add("start_date", date)
	params.Add("end_date", date)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.DailyIrradiance{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.DailyIrradiance{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.DailyIrradiance{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.DailyIrradiance{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response dailyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.DailyIrradiance{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Daily.Time) == 0 || len(response.Daily.ShortwaveRadiationSum) == 0 {
		return models.DailyIrradiance{}, fmt.Errorf("no daily data returned for %s", date)
	}

	cloudyWh := response.Daily.ShortwaveRadiationSum[0] * megajoulesToWattHours

	// The daily summary carries no clear-sky sum; compute the ceiling with
	// the simplified clear-sky model and clamp cloudy to it so attenuation
	// never exceeds 100%.
	dayTime, err := time.Parse("2006-01-02", date)
	if err != nil {
		return models.DailyIrradiance{}, fmt.Errorf("bad date %q: %w", date, err)
	}
	clearWh := DailyClearSkyWh(lat, dayTime)
	if cloudyWh > clearWh {
		clearWh = cloudyWh
	}

	sunrise := ""
	sunset := ""
	if len(response.Daily.Sunrise) > 0 {
		sunrise = clockPart(response.Daily.Sunrise[0])
	}
	if len(response.Daily.Sunset) > 0 {
		sunset = clockPart(response.Daily.Sunset[0])
	}

	return models.DailyIrradiance{
		Date:        date,
		GhiClearWh:  clearWh,
		GhiCloudyWh: cloudyWh,
		Sunrise:     sunrise,
		Sunset:      sunset,
	}, nil
}

// clockPart extracts "HH:MM" from an ISO local timestamp like
// "2025-11-09T06:47".
func clockPart(iso string) string {
	if t, err := time.Parse("2006-01-02T15:04", iso); err == nil {
		return t.Format("15:04")
	}
	return iso
}
