package savings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownLadder(t *testing.T) {
	b := Breakdown(4.9, 0.20, 8000)

	assert.Equal(t, 0.98, b.Daily)
	assert.Equal(t, 29.4, b.Monthly)
	assert.Equal(t, 357.7, b.Yearly)
	assert.Equal(t, 8942.5, b.TwentyFiveYear)
	require.True(t, b.PaybackComputable)
	assert.Equal(t, 22.4, b.PaybackYears) // 8000 / 357.7
}

func TestBreakdownZeroYearlySavings(t *testing.T) {
	// Zero energy means zero savings everywhere; payback is reported as not
	// computable, not as Inf or NaN.
	b := Breakdown(0, 0.20, 8000)

	assert.Equal(t, 0.0, b.Daily)
	assert.Equal(t, 0.0, b.Yearly)
	assert.False(t, b.PaybackComputable)
	assert.Equal(t, 0.0, b.PaybackYears)
}

func TestBreakdownZeroRate(t *testing.T) {
	b := Breakdown(4.9, 0, 8000)

	assert.Equal(t, 0.0, b.Yearly)
	assert.False(t, b.PaybackComputable)
}

func TestBreakdownIsDeterministic(t *testing.T) {
	a := Breakdown(4.9, 0.15, 7000)
	b := Breakdown(4.9, 0.15, 7000)
	assert.Equal(t, a, b)
}

func TestEstimateSystemCost(t *testing.T) {
	assert.Equal(t, 2000.0, EstimateSystemCost(10))
}

func TestImpactDerivations(t *testing.T) {
	report := Impact(4.9, 2.2)

	assert.Equal(t, 803.0, report.YearlyCO2Kg) // 2.2 × 365
	assert.Equal(t, 38.2, report.TreesEquivalent)
	assert.Equal(t, 1987.0, report.MilesNotDriven)
	assert.NotEmpty(t, report.EnergyAnalogies)
	assert.NotEmpty(t, report.CO2Analogies)
	assert.NotEmpty(t, report.HouseholdComparison)
}

func TestImpactIsDeterministic(t *testing.T) {
	a := Impact(4.9, 2.2)
	b := Impact(4.9, 2.2)
	assert.Equal(t, a, b)
}
