package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAcceptsInRange(t *testing.T) {
	assert.NoError(t, Check(FieldRoofArea, 40))
	assert.NoError(t, Check(FieldRoofArea, 5))   // boundary
	assert.NoError(t, Check(FieldRoofArea, 300)) // boundary
	assert.NoError(t, Check(FieldElectricityRate, 0.20))
	assert.NoError(t, Check(FieldPanelEfficiency, 20))
}

func TestCheckRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		field string
		value float64
	}{
		{FieldRoofArea, 4},
		{FieldRoofArea, 301},
		{FieldRoofArea, -10},
		{FieldSystemSize, 0.5},
		{FieldElectricityRate, 1.5},
		{FieldPanelEfficiency, 45},
		{FieldSystemCost, 100},
	}

	for _, tc := range cases {
		err := Check(tc.field, tc.value)
		require.Error(t, err, "%s=%g should be rejected", tc.field, tc.value)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, tc.field, vErr.Field)
		assert.Equal(t, tc.value, vErr.Value)
		assert.NotEmpty(t, vErr.Error())
	}
}

func TestCheckUnknownFieldPasses(t *testing.T) {
	assert.NoError(t, Check("latitude", 9999))
}

func TestRuleDefaultsInsideBounds(t *testing.T) {
	for field, rule := range Rules {
		assert.GreaterOrEqual(t, rule.Default, rule.Min, field)
		assert.LessOrEqual(t, rule.Default, rule.Max, field)
	}
}
