package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/visitor-stats/pkg/constants"
	"github.com/iwvelando/visitor-stats/pkg/datetime"
)

// ValidateMonthKey returns a warning when a non-empty month is not a
// YYYY-MM key.
func ValidateMonthKey(field, month string) string {
	if month == "" {
		return ""
	}
	if _, err := datetime.ParseMonthKey(month); err != nil {
		return fmt.Sprintf("%s %q is not in %s format", field, month, constants.MonthKeyLayout)
	}
	return ""
}

// ValidateRangeNames warns about empty range names and names shared by more
// than one dataset.
func ValidateRangeNames(names []string) []string {
	var warnings []string

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			warnings = append(warnings, "a range name is empty - that dataset will stay empty")
			continue
		}
		if _, dup := seen[name]; dup {
			warnings = append(warnings, fmt.Sprintf("range %q is configured for more than one dataset", name))
		}
		seen[name] = struct{}{}
	}

	return warnings
}

// ValidateLabels warns about labels in want that are missing from known,
// e.g. highlighted countries outside the country set.
func ValidateLabels(field string, want, known []string) []string {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}

	var warnings []string
	for _, w := range want {
		if _, ok := set[w]; !ok {
			warnings = append(warnings, fmt.Sprintf("%s entry %q is not a known value", field, w))
		}
	}
	return warnings
}
