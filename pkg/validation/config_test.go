package validation

import (
	"strings"
	"testing"
)

func TestValidateMonthKey(t *testing.T) {
	tests := []struct {
		name        string
		month       string
		expectEmpty bool
	}{
		{"Empty month", "", true},
		{"Valid month", "2026-01", true},
		{"Japanese label", "2026年1月", false},
		{"Missing zero padding", "2026-1", false},
		{"Out of range month", "2026-13", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateMonthKey("dashboard.reportingMonth", tt.month)
			if tt.expectEmpty && warning != "" {
				t.Errorf("expected no warning, got %q", warning)
			}
			if !tt.expectEmpty {
				if warning == "" {
					t.Fatal("expected warning but got none")
				}
				if !strings.Contains(warning, "dashboard.reportingMonth") {
					t.Errorf("warning should name the field, got %q", warning)
				}
			}
		})
	}
}

func TestValidateRangeNames(t *testing.T) {
	tests := []struct {
		name          string
		names         []string
		expectedCount int
		contains      string
	}{
		{
			name:          "Distinct names",
			names:         []string{"訪日_月間", "訪日_国別"},
			expectedCount: 0,
		},
		{
			name:          "Duplicate name",
			names:         []string{"訪日_月間", "訪日_国別", "訪日_月間"},
			expectedCount: 1,
			contains:      "more than one dataset",
		},
		{
			name:          "Blank name",
			names:         []string{"訪日_月間", "  "},
			expectedCount: 1,
			contains:      "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateRangeNames(tt.names)
			if len(warnings) != tt.expectedCount {
				t.Fatalf("expected %d warnings, got %d: %v", tt.expectedCount, len(warnings), warnings)
			}
			if tt.contains != "" && !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("expected warning containing %q, got %q", tt.contains, warnings[0])
			}
		})
	}
}

func TestValidateLabels(t *testing.T) {
	warnings := ValidateLabels("dashboard.highlightCountries", []string{"韓国", "火星"}, []string{"韓国", "中国"})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "火星") {
		t.Errorf("warning should name the unknown entry, got %q", warnings[0])
	}
}
