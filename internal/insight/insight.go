// Package insight derives the dashboard's presentation views from a loaded
// state: rankings, shares, growth tables and per-country cards.
package insight

import (
	"sort"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/iwvelando/visitor-stats/internal/records"
	"github.com/iwvelando/visitor-stats/pkg/constants"
	"github.com/iwvelando/visitor-stats/pkg/datetime"
	"github.com/iwvelando/visitor-stats/pkg/mathutil"
)

// Bucket classifies a year-over-year change for the growth table.
type Bucket string

const (
	BucketStrong        Bucket = "strong"
	BucketModerate      Bucket = "moderate"
	BucketGrowth        Bucket = "growth"
	BucketSlightDecline Bucket = "slight-decline"
	BucketDecline       Bucket = "decline"
	BucketNoBaseline    Bucket = "no-baseline"
	BucketDisrupted     Bucket = "disrupted"
)

// DefaultColor is used for phases and years without a configured color.
const DefaultColor = "#6b7280"

// RankedCountry is one line of the country ranking.
type RankedCountry struct {
	Rank       int     `json:"rank"`
	Country    string  `json:"country"`
	Value      float64 `json:"value"`
	ShareOfMax float64 `json:"shareOfMax"`
}

// CountryShare is a country's share of the known-country total.
type CountryShare struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// GrowthCell is one (country, year) cell of the growth table.
type GrowthCell struct {
	Year          string   `json:"year"`
	Value         float64  `json:"value"`
	Reported      bool     `json:"reported"`
	GrowthPercent *float64 `json:"growthPercent,omitempty"`
	Bucket        Bucket   `json:"bucket"`
}

// GrowthRow is one country's line of the growth table.
type GrowthRow struct {
	Country string       `json:"country"`
	Cells   []GrowthCell `json:"cells"`
}

// CountryCard summarizes a highlighted country for one month.
type CountryCard struct {
	Country       string               `json:"country"`
	Month         int                  `json:"month"`
	Year          string               `json:"year"`
	Value         float64              `json:"value"`
	PrevYearValue float64              `json:"prevYearValue"`
	YoYPercent    *float64             `json:"yoyPercent,omitempty"`
	Series        map[string][]float64 `json:"series"`
}

// CountryRanking returns the countries with a positive value, largest first,
// capped at limit entries. ShareOfMax is relative to the top entry.
func CountryRanking(breakdown records.CountryBreakdown, limit int) []RankedCountry {
	if limit <= 0 {
		limit = constants.DefaultRankingLimit
	}

	positive := positiveCountries(breakdown)
	if len(positive) > limit {
		positive = positive[:limit]
	}

	ranking := make([]RankedCountry, 0, len(positive))
	if len(positive) == 0 {
		return ranking
	}
	top := positive[0].Value
	for i, c := range positive {
		ranking = append(ranking, RankedCountry{
			Rank:       i + 1,
			Country:    c.Country,
			Value:      c.Value,
			ShareOfMax: mathutil.Round(mathutil.Percentage(c.Value, top)),
		})
	}
	return ranking
}

// CountryShares returns each positive country's percentage of the total over
// all known countries, largest first.
func CountryShares(breakdown records.CountryBreakdown) []CountryShare {
	var total float64
	for _, c := range breakdown.Countries {
		total += c.Value
	}

	positive := positiveCountries(breakdown)
	shares := make([]CountryShare, 0, len(positive))
	for _, c := range positive {
		shares = append(shares, CountryShare{
			Country: c.Country,
			Value:   c.Value,
			Percent: mathutil.Round(mathutil.Percentage(c.Value, total)),
		})
	}
	return shares
}

func positiveCountries(breakdown records.CountryBreakdown) []records.CountrySnapshot {
	positive := make([]records.CountrySnapshot, 0, len(breakdown.Countries))
	for _, c := range breakdown.Countries {
		if c.Value > 0 {
			positive = append(positive, c)
		}
	}
	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Value > positive[j].Value
	})
	return positive
}

// RecentMonthly returns the newest n monthly records in chronological order.
func RecentMonthly(monthly []records.MonthlyRecord, n int) []records.MonthlyRecord {
	if n <= 0 {
		n = constants.DefaultRecentMonths
	}

	sorted := make([]records.MonthlyRecord, len(monthly))
	copy(sorted, monthly)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Month < sorted[j].Month
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// GrowthBuckets builds the growth table over the given year columns. Each
// cell is compared with the column before it; the first column has no
// baseline. A year listed in disrupted is always BucketDisrupted. When years
// is empty every row uses its own columns.
func GrowthBuckets(rows []records.CountryYearRow, years []string, disrupted []string) []GrowthRow {
	flagged := make(map[string]struct{}, len(disrupted))
	for _, y := range disrupted {
		flagged[y] = struct{}{}
	}

	table := make([]GrowthRow, 0, len(rows))
	for _, row := range rows {
		columns := years
		if len(columns) == 0 {
			columns = row.Years
		}

		cells := make([]GrowthCell, 0, len(columns))
		for i, year := range columns {
			value, reported := row.Value(year)
			cell := GrowthCell{Year: year, Value: value, Reported: reported}

			var previous float64
			if i > 0 {
				previous, _ = row.Value(columns[i-1])
			}
			if pct, ok := mathutil.GrowthPercent(value, previous); ok {
				cell.GrowthPercent = &pct
			}

			_, isDisrupted := flagged[year]
			cell.Bucket = classify(value, previous, isDisrupted)
			cells = append(cells, cell)
		}
		table = append(table, GrowthRow{Country: row.Country, Cells: cells})
	}
	return table
}

func classify(current, previous float64, disrupted bool) Bucket {
	if disrupted {
		return BucketDisrupted
	}
	growth, ok := mathutil.Growth(current, previous)
	switch {
	case !ok:
		return BucketNoBaseline
	case growth > 0.3:
		return BucketStrong
	case growth > 0.1:
		return BucketModerate
	case growth > 0:
		return BucketGrowth
	case growth > -0.1:
		return BucketSlightDecline
	default:
		return BucketDecline
	}
}

// CountryCards builds a card for every listed country that has monthly
// points. Value is the country's count for month of year, compared with the
// same month of prevYear. Series holds twelve monthly values per year found
// for the country, zero where no value was reported.
func CountryCards(points []records.CountryMonthlyPoint, countries []string, month int, year, prevYear string) []CountryCard {
	byCountry := make(map[string][]records.CountryMonthlyPoint)
	for _, p := range points {
		byCountry[p.Country] = append(byCountry[p.Country], p)
	}

	cards := make([]CountryCard, 0, len(countries))
	for _, country := range countries {
		own := byCountry[country]
		if len(own) == 0 {
			continue
		}

		card := CountryCard{
			Country: country,
			Month:   month,
			Year:    year,
			Series:  make(map[string][]float64),
		}
		for _, p := range own {
			if p.Month < 1 || p.Month > constants.MonthsPerYear {
				continue
			}
			series, ok := card.Series[p.Year]
			if !ok {
				series = make([]float64, constants.MonthsPerYear)
				card.Series[p.Year] = series
			}
			series[p.Month-1] = p.Value

			if p.Month == month {
				switch p.Year {
				case year:
					card.Value = p.Value
				case prevYear:
					card.PrevYearValue = p.Value
				}
			}
		}
		if pct, ok := mathutil.GrowthPercent(card.Value, card.PrevYearValue); ok {
			card.YoYPercent = &pct
		}
		cards = append(cards, card)
	}
	return cards
}

// Palette resolves chart colors from the configured lookup tables.
type Palette struct {
	phases map[string]string
	years  map[string]string
}

// NewPalette builds a Palette from the dashboard configuration.
func NewPalette(conf config.DashboardConfig) Palette {
	return Palette{phases: conf.PhaseColors, years: conf.YearColors}
}

// PhaseColor returns the color of a long-term phase label.
func (p Palette) PhaseColor(phase string) string {
	if c, ok := p.phases[phase]; ok {
		return c
	}
	return DefaultColor
}

// YearColor returns the series color of a year label.
func (p Palette) YearColor(year string) string {
	if c, ok := p.years[year]; ok {
		return c
	}
	return DefaultColor
}

// PhaseSpan is a long-term point with its resolved color.
type PhaseSpan struct {
	records.LongTermPoint
	Color string `json:"color"`
}

// Summary bundles every derived view of a state.
type Summary struct {
	ReportingMonth string                  `json:"reportingMonth"`
	Latest         *records.MonthlyRecord  `json:"latest,omitempty"`
	Recent         []records.MonthlyRecord `json:"recent"`
	Ranking        []RankedCountry         `json:"ranking"`
	Shares         []CountryShare          `json:"shares"`
	Growth         []GrowthRow             `json:"growth"`
	Cards          []CountryCard           `json:"cards"`
	Phases         []PhaseSpan             `json:"phases"`
	YearColors     map[string]string       `json:"yearColors"`
}

// Build derives every view of st. The card month and years follow the
// state's reporting month; without one no cards are built.
func Build(st *dashboard.State, conf config.DashboardConfig) Summary {
	palette := NewPalette(conf)
	s := Summary{
		ReportingMonth: st.ReportingMonth,
		Recent:         RecentMonthly(st.Monthly, conf.RecentMonths),
		Ranking:        CountryRanking(st.Countries, conf.RankingLimit),
		Shares:         CountryShares(st.Countries),
		Growth:         GrowthBuckets(st.CountryYears, nil, conf.DisruptedYears),
		Cards:          []CountryCard{},
		Phases:         make([]PhaseSpan, 0, len(st.LongTerm)),
		YearColors:     make(map[string]string),
	}
	if latest, ok := st.LatestMonth(); ok {
		s.Latest = &latest
	}

	if t, err := datetime.ParseMonthKey(st.ReportingMonth); err == nil {
		year := datetime.YearLabel(t.Year())
		prevYear, _ := datetime.PreviousYearLabel(year)
		s.Cards = CountryCards(st.CountryMonthly, conf.HighlightCountries, int(t.Month()), year, prevYear)
	}

	for _, p := range st.LongTerm {
		s.Phases = append(s.Phases, PhaseSpan{LongTermPoint: p, Color: palette.PhaseColor(p.Phase)})
	}
	for _, p := range st.YearlyMonthly {
		s.YearColors[p.Year] = palette.YearColor(p.Year)
	}
	return s
}
