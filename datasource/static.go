package datasource

import (
	"context"

	"solar-forecast-service/models"
)

// StaticSource serves a fixed 7-day dataset regardless of input. It exists
// for demo determinism: no API key, no network, stable numbers.
type StaticSource struct{}

// Ensure StaticSource implements the IrradianceSource interface
var _ IrradianceSource = (*StaticSource)(nil)

// NewStaticSource creates the cached-mode irradiance source.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// Name returns the source name
func (s *StaticSource) Name() string {
	return "Static"
}

// staticZagrebData is the last real API response for Zagreb, kept verbatim.
var staticZagrebData = models.IrradianceData{
	Provider:  "Static",
	Location:  "Zagreb, HR",
	Latitude:  45.8150,
	Longitude: 15.9819,
	Days: []models.DailyIrradiance{
		{Date: "2025-11-09", GhiClearWh: 2450, GhiCloudyWh: 1680, Sunrise: "06:47", Sunset: "16:31"},
		{Date: "2025-11-10", GhiClearWh: 2380, GhiCloudyWh: 1590, Sunrise: "06:48", Sunset: "16:30"},
		{Date: "2025-11-11", GhiClearWh: 2310, GhiCloudyWh: 1520, Sunrise: "06:50", Sunset: "16:29"},
		{Date: "2025-11-12", GhiClearWh: 2240, GhiCloudyWh: 1450, Sunrise: "06:51", Sunset: "16:28"},
		{Date: "2025-11-13", GhiClearWh: 2170, GhiCloudyWh: 1380, Sunrise: "06:53", Sunset: "16:27"},
		{Date: "2025-11-14", GhiClearWh: 2100, GhiCloudyWh: 1310, Sunrise: "06:54", Sunset: "16:26"},
		{Date: "2025-11-15", GhiClearWh: 2030, GhiCloudyWh: 1240, Sunrise: "06:55", Sunset: "16:25"},
	},
}

// FetchIrradiance returns a copy of the fixed dataset. The location and
// coordinates are ignored on purpose.
func (s *StaticSource) FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error) {
	if err := ctx.Err(); err != nil {
		return models.IrradianceData{}, err
	}

	data := staticZagrebData
	data.Days = make([]models.DailyIrradiance, len(staticZagrebData.Days))
	copy(data.Days, staticZagrebData.Days)
	return data, nil
}
