// Package normalize converts raw sheet rows into typed records.
//
// Every transform is pure: the same rows always yield equal records. Input
// with fewer than two rows (header plus data) yields an empty result, and
// malformed cells read as zero or as absent, never as an error.
package normalize

import (
	"strings"

	"github.com/iwvelando/visitor-stats/internal/records"
	"github.com/iwvelando/visitor-stats/pkg/cell"
	"github.com/iwvelando/visitor-stats/pkg/constants"
)

// rankPairs is how many (country, value) rank pairs the annual sheet carries.
const rankPairs = 5

// Options configures a Normalizer.
type Options struct {
	// Countries is the enumerated country set of the country sheets.
	Countries []string
}

// Normalizer holds the immutable lookup tables used by the transforms.
type Normalizer struct {
	countries map[string]struct{}
}

// New creates a Normalizer.
func New(opts Options) *Normalizer {
	countries := make(map[string]struct{}, len(opts.Countries))
	for _, c := range opts.Countries {
		countries[NormalizeColumnName(c)] = struct{}{}
	}
	return &Normalizer{countries: countries}
}

// IsKnownCountry reports whether name is in the configured country set.
func (n *Normalizer) IsKnownCountry(name string) bool {
	_, ok := n.countries[NormalizeColumnName(name)]
	return ok
}

// Monthly maps the fixed six-column monthly sheet
// (month, total, prevYear, yoy, prevMonth, mom), keeping sheet order.
func (n *Normalizer) Monthly(rows [][]string) []records.MonthlyRecord {
	if len(rows) < 2 {
		return []records.MonthlyRecord{}
	}
	out := make([]records.MonthlyRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		out = append(out, records.MonthlyRecord{
			Month:      cell.At(row, 0),
			Total:      cell.Number(cell.At(row, 1)),
			PrevYear:   cell.Number(cell.At(row, 2)),
			YoYPercent: cell.Number(cell.At(row, 3)),
			PrevMonth:  cell.Number(cell.At(row, 4)),
			MoMPercent: cell.Number(cell.At(row, 5)),
		})
	}
	return out
}

// CountryBreakdown reads only the newest data row of the country sheet.
// Header columns naming a configured country become snapshots; a column
// named "<country>前年比" supplies that country's YoY percent; any other
// column is kept in Extra. Blank cells are treated as no data.
func (n *Normalizer) CountryBreakdown(rows [][]string) records.CountryBreakdown {
	if len(rows) < 2 {
		return records.CountryBreakdown{Countries: []records.CountrySnapshot{}}
	}
	header := ParseHeader(rows[0])
	latest := rows[1]
	month := cell.At(latest, 0)

	breakdown := records.CountryBreakdown{
		Month:     month,
		Countries: []records.CountrySnapshot{},
	}
	yoy := make(map[string]float64)

	for _, col := range header.Columns(1) {
		raw := cell.At(latest, col.Index)
		if !cell.Present(raw) {
			continue
		}
		value := cell.Number(raw)

		if n.IsKnownCountry(col.Name) {
			breakdown.Countries = append(breakdown.Countries, records.CountrySnapshot{
				Country: col.Name,
				Value:   value,
				Month:   month,
			})
			continue
		}
		if base, ok := yoyBase(col.Name); ok && n.IsKnownCountry(base) {
			yoy[base] = value
			continue
		}
		if breakdown.Extra == nil {
			breakdown.Extra = make(map[string]float64)
		}
		breakdown.Extra[col.Name] = value
	}

	for i := range breakdown.Countries {
		if v, ok := yoy[breakdown.Countries[i].Country]; ok {
			pct := v
			breakdown.Countries[i].YoYPercent = &pct
		}
	}
	return breakdown
}

// Annual maps the fixed thirteen-column annual sheet: year, total, yoy and
// five (country, value) rank pairs. Rank pairs without a country are omitted.
func (n *Normalizer) Annual(rows [][]string) []records.AnnualRecord {
	if len(rows) < 2 {
		return []records.AnnualRecord{}
	}
	out := make([]records.AnnualRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := records.AnnualRecord{
			Year:       cell.At(row, 0),
			Total:      cell.Number(cell.At(row, 1)),
			YoYPercent: cell.Number(cell.At(row, 2)),
			Ranks:      make([]records.RankEntry, 0, rankPairs),
		}
		for k := 0; k < rankPairs; k++ {
			country := cell.At(row, 3+2*k)
			if country == "" {
				continue
			}
			rec.Ranks = append(rec.Ranks, records.RankEntry{
				Rank:    k + 1,
				Country: country,
				Value:   cell.Number(cell.At(row, 4+2*k)),
			})
		}
		out = append(out, rec)
	}
	return out
}

// LongTerm maps the three-column long-term sheet (year, total, phase).
func (n *Normalizer) LongTerm(rows [][]string) []records.LongTermPoint {
	if len(rows) < 2 {
		return []records.LongTermPoint{}
	}
	out := make([]records.LongTermPoint, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		out = append(out, records.LongTermPoint{
			Year:  cell.At(row, 0),
			Total: cell.Number(cell.At(row, 1)),
			Phase: cell.At(row, 2),
		})
	}
	return out
}

// SpecialNotes maps the notes sheet (month, content, country, value, note)
// and keeps only notes for the given reporting month, in sheet order. An
// empty month matches nothing.
func (n *Normalizer) SpecialNotes(rows [][]string, month string) []records.SpecialNote {
	out := []records.SpecialNote{}
	if len(rows) < 2 || month == "" {
		return out
	}
	for _, row := range rows[1:] {
		note := records.SpecialNote{
			Month:   cell.At(row, 0),
			Content: cell.At(row, 1),
			Country: cell.At(row, 2),
			Value:   cell.Number(cell.At(row, 3)),
			Note:    cell.At(row, 4),
		}
		if note.Month != month {
			continue
		}
		out = append(out, note)
	}
	return out
}

// YearlyMonthly reshapes the month-by-year matrix (one row per calendar
// month, one column per year) into sparse points. A point exists only when
// the cell parses to a strictly positive number, so gaps stay gaps.
func (n *Normalizer) YearlyMonthly(rows [][]string) []records.YearlyMonthlyPoint {
	out := []records.YearlyMonthlyPoint{}
	if len(rows) < 2 {
		return out
	}
	years := ParseHeader(rows[0]).Columns(1)
	for _, row := range rows[1:] {
		month, ok := calendarMonth(cell.At(row, 0))
		if !ok {
			continue
		}
		for _, year := range years {
			value, ok := positive(cell.At(row, year.Index))
			if !ok {
				continue
			}
			out = append(out, records.YearlyMonthlyPoint{Month: month, Year: year.Name, Value: value})
		}
	}
	return out
}

// CountryMonthly reshapes the per-country month-by-year sheet
// (country, month, year columns...) with the same sparse policy as
// YearlyMonthly.
func (n *Normalizer) CountryMonthly(rows [][]string) []records.CountryMonthlyPoint {
	out := []records.CountryMonthlyPoint{}
	if len(rows) < 2 {
		return out
	}
	years := ParseHeader(rows[0]).Columns(2)
	for _, row := range rows[1:] {
		country := cell.At(row, 0)
		if country == "" {
			continue
		}
		month, ok := calendarMonth(cell.At(row, 1))
		if !ok {
			continue
		}
		for _, year := range years {
			value, ok := positive(cell.At(row, year.Index))
			if !ok {
				continue
			}
			out = append(out, records.CountryMonthlyPoint{
				Country: country,
				Month:   month,
				Year:    year.Name,
				Value:   value,
			})
		}
	}
	return out
}

// CountryByYear maps the country-by-year matrix into one row per country.
// Every header year, including a partial current-year column, is listed in
// Years; Totals only holds cells that were filled in.
func (n *Normalizer) CountryByYear(rows [][]string) []records.CountryYearRow {
	if len(rows) < 2 {
		return []records.CountryYearRow{}
	}
	header := ParseHeader(rows[0])
	years := header.Columns(1)
	names := header.Names(1)

	out := make([]records.CountryYearRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		country := cell.At(row, 0)
		if country == "" {
			continue
		}
		rec := records.CountryYearRow{
			Country: country,
			Years:   append([]string(nil), names...),
			Totals:  make(map[string]float64, len(years)),
		}
		for _, year := range years {
			raw := cell.At(row, year.Index)
			if !cell.Present(raw) {
				continue
			}
			rec.Totals[year.Name] = cell.Number(raw)
		}
		out = append(out, rec)
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if cell.Present(c) {
			return false
		}
	}
	return true
}

func calendarMonth(s string) (int, bool) {
	m, ok := cell.Int(s)
	if !ok || m < 1 || m > constants.MonthsPerYear {
		return 0, false
	}
	return m, true
}

func positive(raw string) (float64, bool) {
	if !cell.Present(raw) {
		return 0, false
	}
	v := cell.Number(raw)
	if v <= 0 {
		return 0, false
	}
	return v, true
}

// yoyBase extracts the country from headers such as "韓国前年比",
// "韓国_前年比" or "韓国(前年比)".
func yoyBase(name string) (string, bool) {
	trimmed := strings.TrimRight(name, ")）")
	base, ok := strings.CutSuffix(trimmed, "前年比")
	if !ok {
		return "", false
	}
	base = strings.TrimRight(base, "_(（")
	if base == "" {
		return "", false
	}
	return base, true
}
