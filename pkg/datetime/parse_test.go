package datetime

import (
	"testing"
)

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"2026-01", "2026年1月"},
		{"2025-12", "2025年12月"},
		{"not-a-month", "not-a-month"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := MonthLabel(tt.key); got != tt.expected {
				t.Errorf("MonthLabel(%q) = %q, expected %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestParseYearLabel(t *testing.T) {
	tests := []struct {
		label  string
		year   int
		wantOK bool
	}{
		{"2020年", 2020, true},
		{"2026年1月", 2026, true},
		{"2019", 2019, true},
		{"年", 0, false},
		{"abcd年", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			year, ok := ParseYearLabel(tt.label)
			if year != tt.year || ok != tt.wantOK {
				t.Errorf("ParseYearLabel(%q) = (%d, %v), expected (%d, %v)", tt.label, year, ok, tt.year, tt.wantOK)
			}
		})
	}
}

func TestPreviousYearLabel(t *testing.T) {
	if got, ok := PreviousYearLabel("2026年"); !ok || got != "2025年" {
		t.Errorf("PreviousYearLabel(2026年) = %q, %v", got, ok)
	}
	if got, ok := PreviousYearLabel("2026"); !ok || got != "2025" {
		t.Errorf("PreviousYearLabel(2026) = %q, %v", got, ok)
	}
	if _, ok := PreviousYearLabel("x"); ok {
		t.Error("PreviousYearLabel(x) should fail")
	}
}

func TestMonthBeforeMonth(t *testing.T) {
	before, err := MonthBeforeMonth("2025-12", "2026-01")
	if err != nil || !before {
		t.Errorf("MonthBeforeMonth() = %v, %v; expected true", before, err)
	}
	if _, err := MonthBeforeMonth("bad", "2026-01"); err == nil {
		t.Error("expected error for invalid first month")
	}
}
