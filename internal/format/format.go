// Package format renders model outputs as human-readable strings for tables
// and reports. Pure presentation; no decision logic lives here.
package format

import (
	"fmt"

	"gopolicy/domain/policy"
)

// Currency formats a dollar amount with a magnitude suffix at the
// thousand/million/billion thresholds, 2-decimal precision.
func Currency(value float64) string {
	abs := value
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2f billion", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2f million", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.2f thousand", value/1e3)
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}

// Percent formats a proportion as a percentage with 1-decimal precision.
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

// Parameter formats a parameter value according to its key type: currency for
// monetary keys, percent for efficacy/adoption rates, plain otherwise.
func Parameter(key policy.ParameterKey, value float64) string {
	switch {
	case key.IsMonetary():
		return Currency(value)
	case key.IsRate():
		return Percent(value)
	default:
		return fmt.Sprintf("%g", value)
	}
}
