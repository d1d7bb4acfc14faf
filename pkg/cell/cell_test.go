package cell

import (
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Grouped integer", "1,234,567", 1234567},
		{"Plain integer", "4012345", 4012345},
		{"Decimal", "0.6", 0.6},
		{"Negative decimal", "-3.2", -3.2},
		{"Surrounding whitespace", "  12,345 ", 12345},
		{"Full-width digits", "１２，３４５", 12345},
		{"Full-width comma only", "1，000", 1000},
		{"Percent suffix", "6.6%", 6.6},
		{"Unit suffix", "1500000人", 1500000},
		{"Leading dot", ".5", 0.5},
		{"Trailing dot", "7.", 7},
		{"Exponent", "1.5e3", 1500},
		{"Dangling exponent", "2e", 2},
		{"NBSP separator", "1\u00a0234", 1234},
		{"Empty", "", 0},
		{"Whitespace only", "   ", 0},
		{"Dash placeholder", "—", 0},
		{"Text", "n/a", 0},
		{"Sign only", "-", 0},
		{"NaN literal", "NaN", 0},
		{"Infinity literal", "Infinity", 0},
		{"Overflow", "1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Number(tt.input)
			if math.IsNaN(result) {
				t.Fatalf("Number(%q) returned NaN", tt.input)
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Number(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"Plain", "2", 2, true},
		{"Month suffix", "11月", 11, true},
		{"Full-width", "１２", 12, true},
		{"Padded", " 3 ", 3, true},
		{"Empty", "", 0, false},
		{"Text", "合計", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Int(%q) = (%d, %v), expected (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAt(t *testing.T) {
	row := []string{"韓国", " 12 "}
	if got := At(row, 1); got != "12" {
		t.Errorf("At(row, 1) = %q, expected %q", got, "12")
	}
	if got := At(row, 5); got != "" {
		t.Errorf("At(row, 5) = %q, expected empty", got)
	}
	if got := At(nil, 0); got != "" {
		t.Errorf("At(nil, 0) = %q, expected empty", got)
	}
}

func TestPresent(t *testing.T) {
	if Present("  ") {
		t.Error("Present(whitespace) = true, expected false")
	}
	if !Present("0") {
		t.Error("Present(\"0\") = false, expected true")
	}
}
