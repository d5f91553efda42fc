package savings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyAnalogiesCapped(t *testing.T) {
	analogies := EnergyAnalogies(4.9)

	require.Len(t, analogies, 3)
	// 4.9 kWh: 4 fridge days, 49 laptop hours, 245 phone charges lead the list.
	assert.Contains(t, analogies[0].Text, "refrigerator")
	assert.Contains(t, analogies[1].Text, "laptop")
	assert.Contains(t, analogies[2].Text, "smartphones")
}

func TestEnergyAnalogiesSmallYield(t *testing.T) {
	// 0.05 kWh is below the fridge/laptop thresholds but still charges
	// phones and lights LEDs.
	analogies := EnergyAnalogies(0.05)

	require.NotEmpty(t, analogies)
	for _, a := range analogies {
		assert.NotContains(t, a.Text, "refrigerator")
	}
}

func TestEnergyAnalogiesZero(t *testing.T) {
	assert.Empty(t, EnergyAnalogies(0))
}

func TestCO2AnalogiesAlwaysIncludeTrees(t *testing.T) {
	analogies := CO2Analogies(2.2)

	require.NotEmpty(t, analogies)
	assert.Contains(t, analogies[0].Text, "trees")
	assert.Equal(t, "🌳", analogies[0].Icon)
}

func TestHouseholdComparison(t *testing.T) {
	// Below one household-day, expressed in hours.
	assert.Contains(t, HouseholdComparison(4.9), "hours")
	// At or above one household-day, expressed in days.
	assert.Contains(t, HouseholdComparison(45), "days")
}

func TestAnalogiesDeterministic(t *testing.T) {
	assert.Equal(t, EnergyAnalogies(4.9), EnergyAnalogies(4.9))
	assert.Equal(t, CO2Analogies(2.2), CO2Analogies(2.2))
	assert.Equal(t, HouseholdComparison(4.9), HouseholdComparison(4.9))
}
