// Package savings derives financial and environmental context from a
// computed forecast. Every function here is pure: fixed constants, no state,
// identical output for identical input.
package savings

import (
	"math"

	"solar-forecast-service/models"
)

const (
	daysPerMonth  = 30
	daysPerYear   = 365
	lifetimeYears = 25

	// DefaultCostPerM2 is the rough installed-system estimate used when the
	// caller supplies no system cost.
	DefaultCostPerM2 = 200.0
)

// EstimateSystemCost returns the default cost estimate for a roof area.
func EstimateSystemCost(roofAreaM2 float64) float64 {
	return roofAreaM2 * DefaultCostPerM2
}

// Breakdown computes the financial savings ladder for a daily energy yield.
// systemCost of 0 falls back to the roof-area estimate via the caller;
// payback with zero yearly savings is reported as not computable rather than
// an infinite number.
func Breakdown(dailyEnergyKwh, electricityRate, systemCost float64) models.SavingsBreakdown {
	daily := dailyEnergyKwh * electricityRate
	monthly := daily * daysPerMonth
	yearly := daily * daysPerYear

	b := models.SavingsBreakdown{
		ElectricityRate: electricityRate,
		Daily:           round2(daily),
		Monthly:         round2(monthly),
		Yearly:          round2(yearly),
		TwentyFiveYear:  round2(yearly * lifetimeYears),
		SystemCost:      systemCost,
	}

	if yearly > 0 {
		b.PaybackYears = round1(systemCost / yearly)
		b.PaybackComputable = true
	}
	return b
}

// Impact computes the environmental derivations for today's CO₂ savings.
func Impact(dailyEnergyKwh, dailyCO2Kg float64) models.ImpactReport {
	yearlyCO2 := dailyCO2Kg * daysPerYear

	return models.ImpactReport{
		YearlyCO2Kg:         round1(yearlyCO2),
		TreesEquivalent:     round1(yearlyCO2 / kgCO2PerTreeYear),
		MilesNotDriven:      math.Floor(yearlyCO2 / kgCO2PerMile),
		CarsOffRoadDays:     round1(yearlyCO2 / kgCO2PerCarDay),
		BottlesRecycled:     math.Floor(yearlyCO2 * bottlesPerKgCO2),
		EnergyAnalogies:     EnergyAnalogies(dailyEnergyKwh),
		CO2Analogies:        CO2Analogies(dailyCO2Kg),
		HouseholdComparison: HouseholdComparison(dailyEnergyKwh),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
