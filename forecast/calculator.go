// Package forecast converts raw irradiance readings into the derived solar
// metrics the rest of the service presents. The calculator is pure: no I/O,
// no internal state, and numeric edge cases resolve to defined sentinels
// instead of errors.
package forecast

import (
	"math"
	"time"

	"solar-forecast-service/models"

	"github.com/google/uuid"
)

const (
	// DefaultPanelEfficiency is used when the caller supplies none.
	DefaultPanelEfficiency = 0.20

	// CO2FactorKgPerKwh is the fixed emission factor, kg CO₂ avoided per kWh.
	CO2FactorKgPerKwh = 0.45

	wattHoursPerKilowattHour = 1000.0
)

// Params are the home parameters a forecast is computed against.
type Params struct {
	RoofAreaM2      float64
	PanelEfficiency float64 // fraction; 0 means DefaultPanelEfficiency
}

func (p Params) efficiency() float64 {
	if p.PanelEfficiency > 0 {
		return p.PanelEfficiency
	}
	return DefaultPanelEfficiency
}

// Location identifies the resolved place a forecast belongs to.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Calculator derives per-day forecast metrics from raw irradiance.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute transforms a raw irradiance series (Wh/m²) into a ForecastResult.
// Each day is derived independently; output order equals input order and the
// first day becomes the today snapshot.
func (c *Calculator) Compute(loc Location, days []models.DailyIrradiance, params Params) models.ForecastResult {
	eff := params.efficiency()

	out := make([]models.DailyForecast, 0, len(days))
	for _, day := range days {
		out = append(out, computeDay(day, params.RoofAreaM2, eff))
	}

	result := models.ForecastResult{
		ID:              uuid.NewString(),
		Location:        loc.Name,
		Latitude:        loc.Latitude,
		Longitude:       loc.Longitude,
		Days:            out,
		RoofAreaM2:      params.RoofAreaM2,
		PanelEfficiency: eff,
		Generated:       time.Now(),
	}
	if len(out) > 0 {
		result.Today = snapshot(out[0])
	}
	return result
}

// Recalculate produces a new result from an existing one using new home
// parameters. Irradiance-derived fields (GHI, peak sun hours, quality,
// sunrise/sunset) are carried over untouched; only energy and CO₂ are
// recomputed. No irradiance source is consulted.
func (c *Calculator) Recalculate(prev models.ForecastResult, params Params) models.ForecastResult {
	eff := params.efficiency()

	out := make([]models.DailyForecast, 0, len(prev.Days))
	for _, day := range prev.Days {
		energy := round1(params.RoofAreaM2 * eff * day.GhiClearKwh)
		day.EstimatedEnergy = energy
		day.CO2Savings = round1(energy * CO2FactorKgPerKwh)
		out = append(out, day)
	}

	result := models.ForecastResult{
		ID:              uuid.NewString(),
		Location:        prev.Location,
		Latitude:        prev.Latitude,
		Longitude:       prev.Longitude,
		Days:            out,
		RoofAreaM2:      params.RoofAreaM2,
		PanelEfficiency: eff,
		DataMode:        prev.DataMode,
		Generated:       time.Now(),
	}
	if len(out) > 0 {
		result.Today = snapshot(out[0])
	}
	return result
}

// computeDay derives one day's metrics. Rounding happens here and nowhere
// downstream.
func computeDay(day models.DailyIrradiance, roofAreaM2, efficiency float64) models.DailyForecast {
	ghiClearKwh := day.GhiClearWh / wattHoursPerKilowattHour
	ghiCloudyKwh := day.GhiCloudyWh / wattHoursPerKilowattHour

	// Peak sun hours equal clear-sky kWh/m² under the 1000 W/m² reference
	// irradiance convention.
	peakSunHours := ghiClearKwh

	// Quality is the cloud-attenuated share of the clear-sky ceiling.
	// Zero clear-sky irradiance means 0% quality, not a division error,
	// and attenuation above the ceiling clamps to 100%.
	quality := 0.0
	if ghiClearKwh > 0 {
		quality = (ghiCloudyKwh / ghiClearKwh) * 100
		if quality > 100 {
			quality = 100
		}
	}

	energy := roofAreaM2 * efficiency * ghiClearKwh
	co2 := energy * CO2FactorKgPerKwh

	return models.DailyForecast{
		Date:            day.Date,
		GhiClearKwh:     round3(ghiClearKwh),
		GhiCloudyKwh:    round3(ghiCloudyKwh),
		Sunrise:         day.Sunrise,
		Sunset:          day.Sunset,
		PeakSunHours:    round1(peakSunHours),
		SunlightQuality: round1(quality),
		EstimatedEnergy: round1(energy),
		CO2Savings:      round1(co2),
	}
}

func snapshot(d models.DailyForecast) models.TodaySnapshot {
	return models.TodaySnapshot{
		Date:            d.Date,
		SunlightQuality: d.SunlightQuality,
		PeakSunHours:    d.PeakSunHours,
		EstimatedEnergy: d.EstimatedEnergy,
		CO2Savings:      d.CO2Savings,
		Sunrise:         d.Sunrise,
		Sunset:          d.Sunset,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
