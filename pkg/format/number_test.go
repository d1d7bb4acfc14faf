package format

import "testing"

func TestMan(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Monthly total", 4012345, "401.2万人"},
		{"Rounds up", 1169999, "117.0万人"},
		{"Above ten million", 42000000, "4,200.0万人"},
		{"Small count", 12000, "1.2万人"},
		{"Zero is missing", 0, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Man(tt.input); got != tt.expected {
				t.Errorf("Man(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSigned(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Positive", 6.6, "+6.6%"},
		{"Negative", -9.7, "-9.7%"},
		{"Zero", 0, "+0.0%"},
		{"Negative rounding to zero", -0.01, "+0.0%"},
		{"Rounds", 20.86, "+20.9%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Signed(tt.input); got != tt.expected {
				t.Errorf("Signed(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGrouped(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Millions", 4012345, "4,012,345"},
		{"Exactly thousand", 1000, "1,000"},
		{"Below thousand", 999, "999"},
		{"Zero", 0, "0"},
		{"Negative", -1234567, "-1,234,567"},
		{"Fraction rounds", 1234.6, "1,235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grouped(tt.input); got != tt.expected {
				t.Errorf("Grouped(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		expected string
	}{
		{"One decimal", 1234.56, 1, "1,234.6"},
		{"Two decimals", -1234.561, 2, "-1,234.56"},
		{"Tiny negative", -0.01, 1, "0.0"},
		{"Negative decimals treated as zero", 1234.4, -1, "1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decimal(tt.value, tt.decimals); got != tt.expected {
				t.Errorf("Decimal(%v, %d) = %q, expected %q", tt.value, tt.decimals, got, tt.expected)
			}
		})
	}
}
