// Package export writes dashboard state as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook, one per dataset.
const (
	SheetMonthly        = "月間"
	SheetCountryLatest  = "国別"
	SheetAnnual         = "年間"
	SheetLongTerm       = "長期推移"
	SheetSpecialNotes   = "特記"
	SheetMonthlyByYear  = "月別推移"
	SheetCountryMonthly = "国別月間"
	SheetCountryByYear  = "国別年間"
	SheetSources        = "取得元"
)

type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// Workbook builds a workbook with one sheet per dataset of st. The caller
// owns the returned file and must close it.
func Workbook(st *dashboard.State) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets(st) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook for st and writes it to w.
func Write(w io.Writer, st *dashboard.State) error {
	f, err := Workbook(st)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", s.name, err)
	}
	for i := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &s.rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, s.name, err)
		}
	}
	if err := f.SetRowStyle(s.name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", s.name, err)
	}

	last, err := excelize.ColumnNumberToName(len(s.header))
	if err != nil {
		return err
	}
	return f.SetColWidth(s.name, "A", last, 14)
}

func sheets(st *dashboard.State) []sheet {
	monthly := sheet{name: SheetMonthly, header: []interface{}{"月", "訪日外客数", "前年同月", "前年同月比", "前月", "前月比"}}
	for _, m := range st.Monthly {
		monthly.rows = append(monthly.rows, []interface{}{m.Month, m.Total, m.PrevYear, m.YoYPercent, m.PrevMonth, m.MoMPercent})
	}

	countries := sheet{name: SheetCountryLatest, header: []interface{}{"月", "国・地域", "人数", "前年比"}}
	for _, c := range st.Countries.Countries {
		var yoy interface{}
		if c.YoYPercent != nil {
			yoy = *c.YoYPercent
		}
		countries.rows = append(countries.rows, []interface{}{st.Countries.Month, c.Country, c.Value, yoy})
	}
	extras := make([]string, 0, len(st.Countries.Extra))
	for name := range st.Countries.Extra {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		countries.rows = append(countries.rows, []interface{}{st.Countries.Month, name, st.Countries.Extra[name], nil})
	}

	annual := sheet{name: SheetAnnual, header: []interface{}{"年", "合計", "前年比", "順位", "国・地域", "人数"}}
	for _, a := range st.Annual {
		if len(a.Ranks) == 0 {
			annual.rows = append(annual.rows, []interface{}{a.Year, a.Total, a.YoYPercent, nil, nil, nil})
		}
		for _, r := range a.Ranks {
			annual.rows = append(annual.rows, []interface{}{a.Year, a.Total, a.YoYPercent, r.Rank, r.Country, r.Value})
		}
	}

	longTerm := sheet{name: SheetLongTerm, header: []interface{}{"年", "訪日客数", "フェーズ"}}
	for _, l := range st.LongTerm {
		longTerm.rows = append(longTerm.rows, []interface{}{l.Year, l.Total, l.Phase})
	}

	notes := sheet{name: SheetSpecialNotes, header: []interface{}{"月", "内容", "国", "人数", "備考"}}
	for _, n := range st.SpecialNotes {
		notes.rows = append(notes.rows, []interface{}{n.Month, n.Content, n.Country, n.Value, n.Note})
	}

	byYear := sheet{name: SheetMonthlyByYear, header: []interface{}{"月", "年", "人数"}}
	for _, p := range st.YearlyMonthly {
		byYear.rows = append(byYear.rows, []interface{}{p.Month, p.Year, p.Value})
	}

	countryMonthly := sheet{name: SheetCountryMonthly, header: []interface{}{"国", "月", "年", "人数"}}
	for _, p := range st.CountryMonthly {
		countryMonthly.rows = append(countryMonthly.rows, []interface{}{p.Country, p.Month, p.Year, p.Value})
	}

	countryYears := sheet{name: SheetCountryByYear, header: []interface{}{"国"}}
	var years []string
	if len(st.CountryYears) > 0 {
		years = st.CountryYears[0].Years
	}
	for _, y := range years {
		countryYears.header = append(countryYears.header, y)
	}
	for _, c := range st.CountryYears {
		row := []interface{}{c.Country}
		for _, y := range years {
			if v, ok := c.Value(y); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		countryYears.rows = append(countryYears.rows, row)
	}

	sources := sheet{name: SheetSources, header: []interface{}{"データ", "範囲", "行数", "フィンガープリント"}}
	for _, s := range st.Sources {
		sources.rows = append(sources.rows, []interface{}{s.Dataset, s.Range, s.Rows, s.Fingerprint})
	}

	return []sheet{monthly, countries, annual, longTerm, notes, byYear, countryMonthly, countryYears, sources}
}
