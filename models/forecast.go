package models

import (
	"time"
)

// DailyForecast holds the derived solar metrics for a single day.
// All values are rounded once, at the calculator boundary: kWh/m² to 3
// decimals, everything else to 1 decimal.
type DailyForecast struct {
	Date            string  `json:"date"`
	GhiClearKwh     float64 `json:"ghiClearKwh"`     // kWh/m²
	GhiCloudyKwh    float64 `json:"ghiCloudyKwh"`    // kWh/m²
	Sunrise         string  `json:"sunrise"`
	Sunset          string  `json:"sunset"`
	PeakSunHours    float64 `json:"peakSunHours"`    // hours at 1000 W/m² reference
	SunlightQuality float64 `json:"sunlightQuality"` // percent of clear-sky potential
	EstimatedEnergy float64 `json:"estimatedEnergy"` // kWh
	CO2Savings      float64 `json:"co2Savings"`      // kg
}

// TodaySnapshot is the subset of the first forecast day that the
// presentation layer and the summary boundary consume directly.
type TodaySnapshot struct {
	Date            string  `json:"date"`
	SunlightQuality float64 `json:"sunlightQuality"`
	PeakSunHours    float64 `json:"peakSunHours"`
	EstimatedEnergy float64 `json:"estimatedEnergy"`
	CO2Savings      float64 `json:"co2Savings"`
	Sunrise         string  `json:"sunrise"`
	Sunset          string  `json:"sunset"`
}

// ForecastResult is the aggregate returned to callers. It is created fresh on
// every forecast request and never mutated; recalculation with new home
// parameters produces a new result.
type ForecastResult struct {
	ID              string          `json:"id"`
	Location        string          `json:"location"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
	Days            []DailyForecast `json:"days"` // ordered by date ascending, [0] is today
	Today           TodaySnapshot   `json:"today"`
	RoofAreaM2      float64         `json:"roofArea"`
	PanelEfficiency float64         `json:"panelEfficiency"`
	DataMode        string          `json:"dataMode"` // "cached" or "live"
	Generated       time.Time       `json:"generated"`
}
