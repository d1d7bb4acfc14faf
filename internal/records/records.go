// Package records defines the typed domain records produced by normalizing
// the visitor statistics sheets.
package records

// MonthlyRecord is one row of the monthly totals sheet. Month is a
// YYYY-MM key.
type MonthlyRecord struct {
	Month      string  `json:"month"`
	Total      float64 `json:"total"`
	PrevYear   float64 `json:"prevYear"`
	YoYPercent float64 `json:"yoyPercent"`
	PrevMonth  float64 `json:"prevMonth"`
	MoMPercent float64 `json:"momPercent"`
}

// CountrySnapshot is one country's visitor count for the latest reported month.
type CountrySnapshot struct {
	Country    string   `json:"country"`
	Value      float64  `json:"value"`
	YoYPercent *float64 `json:"yoyPercent,omitempty"`
	Month      string   `json:"month"`
}

// CountryBreakdown holds the latest month's per-country counts. Countries
// keeps header order and only names from the configured country set; any
// other header is kept in Extra.
type CountryBreakdown struct {
	Month     string             `json:"month"`
	Countries []CountrySnapshot  `json:"countries"`
	Extra     map[string]float64 `json:"extra,omitempty"`
}

// Empty reports whether the breakdown carries no data.
func (b CountryBreakdown) Empty() bool {
	return b.Month == "" && len(b.Countries) == 0 && len(b.Extra) == 0
}

// Find returns the snapshot for country, if present.
func (b CountryBreakdown) Find(country string) (CountrySnapshot, bool) {
	for _, c := range b.Countries {
		if c.Country == country {
			return c, true
		}
	}
	return CountrySnapshot{}, false
}

// RankEntry is one of the top-five source countries of a year.
type RankEntry struct {
	Rank    int     `json:"rank"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// AnnualRecord summarizes a calendar year.
type AnnualRecord struct {
	Year       string      `json:"year"`
	Total      float64     `json:"total"`
	YoYPercent float64     `json:"yoyPercent"`
	Ranks      []RankEntry `json:"ranks"`
}

// LongTermPoint is one year of the long-term series. Phase is the economic
// phase label exactly as the sheet states it.
type LongTermPoint struct {
	Year  string  `json:"year"`
	Total float64 `json:"total"`
	Phase string  `json:"phase"`
}

// SpecialNote is an editorial highlight attached to a reporting month.
type SpecialNote struct {
	Month   string  `json:"month"`
	Content string  `json:"content"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
	Note    string  `json:"note"`
}

// YearlyMonthlyPoint is a single (month, year, value) entry of the sparse
// month-by-year series.
type YearlyMonthlyPoint struct {
	Month int     `json:"month"`
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// CountryMonthlyPoint is the per-country variant of YearlyMonthlyPoint.
type CountryMonthlyPoint struct {
	Country string  `json:"country"`
	Month   int     `json:"month"`
	Year    string  `json:"year"`
	Value   float64 `json:"value"`
}

// CountryYearRow is one country's yearly totals. A year missing from Totals
// had no data; a zero entry is a reported zero.
type CountryYearRow struct {
	Country string             `json:"country"`
	Years   []string           `json:"years"`
	Totals  map[string]float64 `json:"totals"`
}

// Value returns the total for year and whether the sheet reported one.
func (r CountryYearRow) Value(year string) (float64, bool) {
	v, ok := r.Totals[year]
	return v, ok
}
