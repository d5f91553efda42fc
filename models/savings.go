package models

// SavingsBreakdown holds the financial derivations for today's estimated
// energy output. Flat multiplication, no compounding or degradation.
type SavingsBreakdown struct {
	ElectricityRate   float64 `json:"electricityRate"` // currency per kWh
	Daily             float64 `json:"daily"`
	Monthly           float64 `json:"monthly"`
	Yearly            float64 `json:"yearly"`
	TwentyFiveYear    float64 `json:"twentyFiveYear"`
	SystemCost        float64 `json:"systemCost"`
	PaybackYears      float64 `json:"paybackYears"`
	PaybackComputable bool    `json:"paybackComputable"`
}

// Analogy is one qualitative comparison derived from energy or CO2 figures.
type Analogy struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// ImpactReport bundles the environmental derivations for today's CO2 savings.
type ImpactReport struct {
	YearlyCO2Kg         float64   `json:"yearlyCO2Kg"`
	TreesEquivalent     float64   `json:"treesEquivalent"`
	MilesNotDriven      float64   `json:"milesNotDriven"`
	CarsOffRoadDays     float64   `json:"carsOffRoadDays"`
	BottlesRecycled     float64   `json:"bottlesRecycled"`
	EnergyAnalogies     []Analogy `json:"energyAnalogies"`
	CO2Analogies        []Analogy `json:"co2Analogies"`
	HouseholdComparison string    `json:"householdComparison"`
}
