// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/visitor-stats/pkg/constants"
)

// Round rounds a value to one decimal, the precision every percentage is
// reported with.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Percentage calculates what percentage value is of total. A zero total
// yields zero.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// Growth returns the fractional change from previous to current. It is not
// defined when previous is zero.
func Growth(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous, true
}

// GrowthPercent is Growth expressed as a percentage rounded to one decimal.
func GrowthPercent(current, previous float64) (float64, bool) {
	g, ok := Growth(current, previous)
	if !ok {
		return 0, false
	}
	return Round(g * constants.PercentageMultiplier), true
}

// ToMan converts a head count into units of ten thousand.
func ToMan(val float64) float64 {
	return val / constants.Man
}
