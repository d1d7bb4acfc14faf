// Package datetime provides month-key and year-label utilities.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/visitor-stats/pkg/constants"
)

const (
	// MonthKeyLayout is the format of month keys in the source sheets.
	MonthKeyLayout = constants.MonthKeyLayout
)

// ParseMonthKey parses a YYYY-MM key.
func ParseMonthKey(key string) (time.Time, error) {
	return time.Parse(MonthKeyLayout, strings.TrimSpace(key))
}

// MonthLabel renders a month key the way the dashboard shows it, e.g.
// "2026-01" -> "2026年1月". Keys that do not parse are returned unchanged.
func MonthLabel(key string) string {
	t, err := ParseMonthKey(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
}

// YearLabel formats a year as a column label, e.g. 2020 -> "2020年".
func YearLabel(year int) string {
	return strconv.Itoa(year) + constants.YearSuffix
}

// ParseYearLabel extracts the year from labels such as "2020年", "2026年1月"
// or a bare "2020".
func ParseYearLabel(label string) (int, bool) {
	trimmed := strings.TrimSpace(label)
	if len(trimmed) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(trimmed[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// PreviousYearLabel returns the label of the year before label, keeping the
// "年" suffix style, e.g. "2026年" -> "2025年".
func PreviousYearLabel(label string) (string, bool) {
	year, ok := ParseYearLabel(label)
	if !ok {
		return "", false
	}
	if strings.HasSuffix(strings.TrimSpace(label), constants.YearSuffix) {
		return YearLabel(year - 1), true
	}
	return strconv.Itoa(year - 1), true
}

// MonthBeforeMonth returns true if first is strictly before second.
func MonthBeforeMonth(first, second string) (bool, error) {
	firstT, err := ParseMonthKey(first)
	if err != nil {
		return false, err
	}
	secondT, err := ParseMonthKey(second)
	if err != nil {
		return false, err
	}
	return firstT.Before(secondT), nil
}
