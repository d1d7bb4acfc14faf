// Package format renders visitor counts and percentages for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/visitor-stats/pkg/mathutil"
)

// Missing is shown in place of a count that was not reported.
const Missing = "—"

// Man returns a count in units of ten thousand with one decimal, e.g.
// 4012345 -> "401.2万人". Zero renders as Missing.
func Man(value float64) string {
	if value == 0 {
		return Missing
	}
	return Decimal(mathutil.ToMan(value), 1) + "万人"
}

// Signed returns a percentage with an explicit sign (e.g., "+6.6%", "-9.7%").
func Signed(percent float64) string {
	formatted := fmt.Sprintf("%.1f", percent)
	if formatted == "-0.0" {
		formatted = "0.0"
	}
	if !strings.HasPrefix(formatted, "-") {
		formatted = "+" + formatted
	}
	return formatted + "%"
}

// Grouped returns a whole count with thousands separators (e.g., "4,012,345").
func Grouped(value float64) string {
	return Decimal(value, 0)
}

// Decimal returns value with the given number of decimals and thousands
// separators (e.g., "-1,234.5").
func Decimal(value float64, decimals int) string {
	sign := ""
	if value < 0 && math.Abs(value) >= 0.5*math.Pow10(-decimals) {
		sign = "-"
	}
	return sign + formatPositive(math.Abs(value), decimals)
}

func formatPositive(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
