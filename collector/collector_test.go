package collector

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"solar-forecast-service/api"
	"solar-forecast-service/datasource"
	"solar-forecast-service/forecast"
	"solar-forecast-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSource struct {
	calls   int64
	lastLat float64
	lastLon float64
	data    models.IrradianceData
}

func (s *recordingSource) Name() string { return "Recording" }

func (s *recordingSource) FetchIrradiance(ctx context.Context, location string, lat, lon float64) (models.IrradianceData, error) {
	atomic.AddInt64(&s.calls, 1)
	s.lastLat = lat
	s.lastLon = lon
	data := s.data
	data.Location = location
	data.Latitude = lat
	data.Longitude = lon
	return data, nil
}

func sampleDays() []models.DailyIrradiance {
	days := make([]models.DailyIrradiance, 0, datasource.ForecastDays)
	for i := 0; i < datasource.ForecastDays; i++ {
		days = append(days, models.DailyIrradiance{
			Date:        time.Date(2025, 11, 9+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			GhiClearWh:  2450,
			GhiCloudyWh: 1680,
			Sunrise:     "06:47",
			Sunset:      "16:31",
		})
	}
	return days
}

func TestRefreshKeepsStoredParams(t *testing.T) {
	source := &recordingSource{data: models.IrradianceData{Provider: "Recording", Days: sampleDays()}}
	calculator := forecast.NewCalculator()
	store := api.NewForecastStore()

	seed := calculator.Compute(
		forecast.Location{Name: "Zagreb, HR", Latitude: 45.815, Longitude: 15.9819},
		sampleDays(),
		forecast.Params{RoofAreaM2: 25, PanelEfficiency: 0.18},
	)
	store.Update(seed)

	refresher := NewRefresher(source, calculator, store, time.Hour)
	refresher.refreshAll(context.Background())

	assert.Equal(t, int64(1), atomic.LoadInt64(&source.calls))
	assert.Equal(t, 45.815, source.lastLat)
	assert.Equal(t, 15.9819, source.lastLon)

	refreshed, ok := store.GetByLocation("Zagreb, HR")
	require.True(t, ok)
	assert.Equal(t, 25.0, refreshed.RoofAreaM2)
	assert.Equal(t, 0.18, refreshed.PanelEfficiency)
	assert.NotEqual(t, seed.ID, refreshed.ID)
	assert.Equal(t, seed.Days[0].EstimatedEnergy, refreshed.Days[0].EstimatedEnergy)
}

func TestRefreshEmptyStoreSkipsProvider(t *testing.T) {
	source := &recordingSource{data: models.IrradianceData{Days: sampleDays()}}
	refresher := NewRefresher(source, forecast.NewCalculator(), api.NewForecastStore(), time.Hour)

	refresher.refreshAll(context.Background())
	assert.Equal(t, int64(0), atomic.LoadInt64(&source.calls))
}

func TestStartStops(t *testing.T) {
	source := &recordingSource{data: models.IrradianceData{Days: sampleDays()}}
	store := api.NewForecastStore()
	calculator := forecast.NewCalculator()
	store.Update(calculator.Compute(
		forecast.Location{Name: "Zagreb, HR", Latitude: 45.815, Longitude: 15.9819},
		sampleDays(),
		forecast.Params{RoofAreaM2: 40},
	))

	refresher := NewRefresher(source, calculator, store, 10*time.Millisecond)
	stop := refresher.Start(context.Background())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&source.calls) >= 2
	}, time.Second, 5*time.Millisecond)

	stop()
	after := atomic.LoadInt64(&source.calls)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&source.calls))
}
