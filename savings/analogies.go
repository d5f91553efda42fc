package savings

import (
	"fmt"
	"math"

	"solar-forecast-service/models"
)

// Per-unit constants behind the qualitative analogies. The constants are the
// contract; wording is free to change.
const (
	kwhPerFridgeDay   = 1.2
	kwhPerLaptopHour  = 0.1
	kwhPerPhoneCharge = 0.02
	kwhPerRouterDay   = 0.24
	kwhPerLEDHour     = 0.01
	kwhPerTVHour      = 0.15

	kgCO2PerTreeYear = 21.0  // a tree absorbs ~21 kg CO2/year
	kgCO2PerMile     = 0.404 // average car
	kgCO2PerCarDay   = 10.6
	bottlesPerKgCO2  = 55.0 // recycling vs. landfill

	kwhPerHouseholdDay = 30.0
)

// maxEnergyAnalogies caps how many comparisons are returned; the most
// relatable ones come first.
const maxEnergyAnalogies = 3

// EnergyAnalogies translates a kWh figure into everyday comparisons.
func EnergyAnalogies(kwh float64) []models.Analogy {
	var analogies []models.Analogy

	if fridgeDays := math.Floor(kwh / kwhPerFridgeDay); fridgeDays > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Power a refrigerator for %.0f %s", fridgeDays, plural(fridgeDays, "day", "days")),
			Icon: "🧊",
		})
	}
	if laptopHours := math.Floor(kwh / kwhPerLaptopHour); laptopHours > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Run your laptop for %.0f hours", laptopHours),
			Icon: "💻",
		})
	}
	if phoneCharges := math.Floor(kwh / kwhPerPhoneCharge); phoneCharges > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Charge %.0f smartphones fully", phoneCharges),
			Icon: "📱",
		})
	}
	if routerDays := math.Floor(kwh / kwhPerRouterDay); routerDays > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Power your WiFi router for %.0f %s", routerDays, plural(routerDays, "day", "days")),
			Icon: "📡",
		})
	}
	if ledHours := math.Floor(kwh / kwhPerLEDHour); ledHours > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Light an LED bulb for %.0f hours", ledHours),
			Icon: "💡",
		})
	}
	if tvHours := math.Floor(kwh / kwhPerTVHour); tvHours > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Watch TV for %.0f hours", tvHours),
			Icon: "📺",
		})
	}

	if len(analogies) > maxEnergyAnalogies {
		analogies = analogies[:maxEnergyAnalogies]
	}
	return analogies
}

// CO2Analogies translates a kg CO₂ figure into everyday comparisons.
func CO2Analogies(co2Kg float64) []models.Analogy {
	trees := co2Kg / kgCO2PerTreeYear
	analogies := []models.Analogy{{
		Text: fmt.Sprintf("Equivalent to %.1f %s planted", trees, plural(trees, "tree", "trees")),
		Icon: "🌳",
	}}

	if miles := math.Floor(co2Kg / kgCO2PerMile); miles > 0 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Same as not driving %.0f miles", miles),
			Icon: "🚗",
		})
	}
	if cars := co2Kg / kgCO2PerCarDay; cars >= 0.05 {
		analogies = append(analogies, models.Analogy{
			Text: fmt.Sprintf("Like taking %.1f %s off the road for a day", cars, plural(cars, "car", "cars")),
			Icon: "🚙",
		})
	}
	return analogies
}

// HouseholdComparison relates a kWh figure to average household consumption.
func HouseholdComparison(kwh float64) string {
	days := kwh / kwhPerHouseholdDay
	if days >= 1 {
		return fmt.Sprintf("This could power an average home for %.1f days! ⚡", days)
	}
	return fmt.Sprintf("This can power an average home for %.1f hours ⚡", days*24)
}

func plural(n float64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
