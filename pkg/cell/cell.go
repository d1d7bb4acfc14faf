// Package cell coerces raw spreadsheet cell strings into numbers.
//
// Sheet cells arrive formatted for display: thousands separators, full-width
// digits, trailing units such as "%" or "人". Coercion never fails; anything
// that does not start with a decimal number reads as 0.
package cell

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// separators are dropped before parsing. Width folding runs first, so the
// full-width comma arrives here as ",".
var separators = strings.NewReplacer(
	",", "",
	"_", "",
	" ", "",
	"\u00a0", "",
	"\u2009", "",
	"\u202f", "",
	"\u3000", "",
)

// Number parses a cell as a decimal number. Empty, whitespace-only,
// unparseable and non-finite input yields exactly 0.
func Number(s string) float64 {
	cleaned := clean(s)
	prefix := leadingDecimal(cleaned)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Int parses the leading integer of a cell, e.g. "2月" -> 2. The boolean is
// false when the cell does not start with a digit.
func Int(s string) (int, bool) {
	cleaned := clean(s)
	i := 0
	if i < len(cleaned) && (cleaned[i] == '+' || cleaned[i] == '-') {
		i++
	}
	start := i
	for i < len(cleaned) && isDigit(cleaned[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Present reports whether a cell holds anything other than whitespace.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// At returns the trimmed cell at index i, or "" when the row is too short.
func At(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func clean(s string) string {
	return separators.Replace(width.Narrow.String(strings.TrimSpace(s)))
}

// leadingDecimal returns the longest prefix of s that is a decimal number:
// optional sign, digits with an optional fraction, optional exponent.
func leadingDecimal(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[:i]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
