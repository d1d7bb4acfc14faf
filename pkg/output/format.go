// Package output provides utilities for formatting and displaying dashboard
// state.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/iwvelando/visitor-stats/internal/insight"
	"github.com/iwvelando/visitor-stats/pkg/datetime"
	"github.com/iwvelando/visitor-stats/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CSVHeader is the header row of the CSV output.
var CSVHeader = []string{"dataset", "key", "series", "value"}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, st *dashboard.State, summary insight.Summary) {
	p := message.NewPrinter(language.Japanese)

	if st.Status == dashboard.StatusError {
		_, _ = p.Fprintf(w, "!!! %s\n", st.Error)
		return
	}

	_, _ = p.Fprintf(w, "--- 訪日外客数 %s ---\n", datetime.MonthLabel(st.ReportingMonth))
	if summary.Latest != nil {
		_, _ = p.Fprintf(w, "合計 %s | 前年同月比 %s | 前月比 %s\n",
			format.Man(summary.Latest.Total),
			format.Signed(summary.Latest.YoYPercent),
			format.Signed(summary.Latest.MoMPercent))
	}

	_, _ = p.Fprintf(w, "\n--- 月別推移 ---\n")
	_, _ = p.Fprintf(w, "月      | 訪日外客数    | 前年同月\n")
	_, _ = p.Fprintf(w, "_______ | _____________ | _________\n")
	for _, m := range summary.Recent {
		_, _ = p.Fprintf(w, "%s | %13d | %d\n", m.Month, whole(m.Total), whole(m.PrevYear))
	}

	if len(summary.Ranking) > 0 {
		_, _ = p.Fprintf(w, "\n--- 国・地域別ランキング ---\n")
		for _, r := range summary.Ranking {
			_, _ = p.Fprintf(w, "%2d. %s | %s | %.1f%%\n", r.Rank, r.Country, format.Grouped(r.Value), r.ShareOfMax)
		}
	}

	if len(st.Annual) > 0 {
		_, _ = p.Fprintf(w, "\n--- 年間 ---\n")
		for _, a := range st.Annual {
			_, _ = p.Fprintf(w, "%s | %s | 前年比 %s\n", a.Year, format.Man(a.Total), format.Signed(a.YoYPercent))
		}
	}

	if len(summary.Cards) > 0 {
		_, _ = p.Fprintf(w, "\n--- 主要国・地域 ---\n")
		for _, c := range summary.Cards {
			yoy := format.Missing
			if c.YoYPercent != nil {
				yoy = format.Signed(*c.YoYPercent)
			}
			_, _ = p.Fprintf(w, "%s | %s | 前年同月比 %s\n", c.Country, format.Man(c.Value), yoy)
		}
	}

	if len(st.SpecialNotes) > 0 {
		_, _ = p.Fprintf(w, "\n--- 特記事項 ---\n")
		for _, n := range st.SpecialNotes {
			_, _ = p.Fprintf(w, "%s: %s %s (%s)\n", n.Country, n.Content, format.Man(n.Value), n.Note)
		}
	}
}

// CsvFormat writes every dataset as long-format rows of
// dataset, key, series and value.
func CsvFormat(w io.Writer, st *dashboard.State) error {
	cw := csv.NewWriter(w)
	rows := [][]string{CSVHeader}

	for _, m := range st.Monthly {
		rows = append(rows,
			row(dashboard.DatasetMonthly, m.Month, "total", m.Total),
			row(dashboard.DatasetMonthly, m.Month, "prevYear", m.PrevYear),
			row(dashboard.DatasetMonthly, m.Month, "yoyPercent", m.YoYPercent),
			row(dashboard.DatasetMonthly, m.Month, "prevMonth", m.PrevMonth),
			row(dashboard.DatasetMonthly, m.Month, "momPercent", m.MoMPercent),
		)
	}
	for _, c := range st.Countries.Countries {
		rows = append(rows, row(dashboard.DatasetCountryLatest, st.Countries.Month, c.Country, c.Value))
	}
	extras := make([]string, 0, len(st.Countries.Extra))
	for name := range st.Countries.Extra {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		rows = append(rows, row(dashboard.DatasetCountryLatest, st.Countries.Month, name, st.Countries.Extra[name]))
	}
	for _, a := range st.Annual {
		rows = append(rows,
			row(dashboard.DatasetAnnual, a.Year, "total", a.Total),
			row(dashboard.DatasetAnnual, a.Year, "yoyPercent", a.YoYPercent),
		)
		for _, r := range a.Ranks {
			rows = append(rows, row(dashboard.DatasetAnnual, a.Year, fmt.Sprintf("rank%d:%s", r.Rank, r.Country), r.Value))
		}
	}
	for _, l := range st.LongTerm {
		rows = append(rows, row(dashboard.DatasetLongTerm, l.Year, l.Phase, l.Total))
	}
	for _, n := range st.SpecialNotes {
		rows = append(rows, row(dashboard.DatasetSpecialNotes, n.Month, n.Country, n.Value))
	}
	for _, p := range st.YearlyMonthly {
		rows = append(rows, row(dashboard.DatasetMonthlyByYear, p.Year, strconv.Itoa(p.Month), p.Value))
	}
	for _, p := range st.CountryMonthly {
		rows = append(rows, row(dashboard.DatasetCountryMonthly, p.Country, p.Year+"/"+strconv.Itoa(p.Month), p.Value))
	}
	for _, c := range st.CountryYears {
		for _, year := range c.Years {
			if v, ok := c.Value(year); ok {
				rows = append(rows, row(dashboard.DatasetCountryByYear, c.Country, year, v))
			}
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// JSONFormat writes the state and its derived views as indented JSON.
func JSONFormat(w io.Writer, st *dashboard.State, summary insight.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	payload := struct {
		State    *dashboard.State `json:"state"`
		Insights insight.Summary  `json:"insights"`
	}{st, summary}
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func row(dataset, key, series string, value float64) []string {
	return []string{dataset, key, series, strconv.FormatFloat(value, 'f', -1, 64)}
}

func whole(v float64) int64 {
	return int64(math.Round(v))
}
