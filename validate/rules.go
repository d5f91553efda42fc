// Package validate checks user-supplied home and financial parameters before
// they reach the calculator. Out-of-range input is rejected, never clamped.
package validate

import (
	"fmt"
)

// Rule bounds one numeric input field.
type Rule struct {
	Min     float64
	Max     float64
	Default float64
	Unit    string
	Label   string
}

// Field names accepted by Check.
const (
	FieldRoofArea        = "roofArea"
	FieldSystemSize      = "systemSize"
	FieldMonthlyBill     = "monthlyBill"
	FieldElectricityRate = "electricityRate"
	FieldPanelEfficiency = "panelEfficiency"
	FieldSystemCost      = "systemCost"
)

// Rules maps field names to their bounds. Panel efficiency is expressed in
// percent here, as entered by users; the calculator takes a fraction.
var Rules = map[string]Rule{
	FieldRoofArea:        {Min: 5, Max: 300, Default: 40, Unit: "m²", Label: "Roof Area"},
	FieldSystemSize:      {Min: 1, Max: 100, Default: 5, Unit: "kW", Label: "System Size"},
	FieldMonthlyBill:     {Min: 10, Max: 1000, Default: 60, Unit: "€", Label: "Monthly Electricity Bill"},
	FieldElectricityRate: {Min: 0.05, Max: 1.00, Default: 0.20, Unit: "€/kWh", Label: "Electricity Rate"},
	FieldPanelEfficiency: {Min: 10, Max: 30, Default: 20, Unit: "%", Label: "Panel Efficiency"},
	FieldSystemCost:      {Min: 500, Max: 200000, Default: 7000, Unit: "€", Label: "Estimated System Cost"},
}

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field string
	Value float64
	Rule  Rule
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g %s, got %g",
		e.Rule.Label, e.Rule.Min, e.Rule.Max, e.Rule.Unit, e.Value)
}

// Check validates a value against the named field's rule. Unknown fields
// pass; the rules table is the whitelist of constrained inputs.
func Check(field string, value float64) error {
	rule, ok := Rules[field]
	if !ok {
		return nil
	}
	if value < rule.Min || value > rule.Max {
		return &ValidationError{Field: field, Value: value, Rule: rule}
	}
	return nil
}
