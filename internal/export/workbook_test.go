package export

import (
	"bytes"
	"testing"

	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/iwvelando/visitor-stats/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleState() *dashboard.State {
	return &dashboard.State{
		Status: dashboard.StatusReady,
		Monthly: []records.MonthlyRecord{
			{Month: "2026-01", Total: 4012345, PrevYear: 3987654, YoYPercent: 0.6, PrevMonth: 3765432, MoMPercent: 6.6},
		},
		Countries: records.CountryBreakdown{
			Month:     "2026-01",
			Countries: []records.CountrySnapshot{{Country: "韓国", Value: 1170000, Month: "2026-01"}},
			Extra:     map[string]float64{"クルーズ": 12000},
		},
		Annual: []records.AnnualRecord{
			{Year: "2025", Total: 42000000, YoYPercent: 15.6, Ranks: []records.RankEntry{
				{Rank: 1, Country: "中国", Value: 9000000},
				{Rank: 2, Country: "韓国", Value: 8800000},
			}},
		},
		CountryYears: []records.CountryYearRow{
			{Country: "韓国", Years: []string{"2019年", "2020年"}, Totals: map[string]float64{"2019年": 5584597, "2020年": 487939}},
			{Country: "ロシア", Years: []string{"2019年", "2020年"}, Totals: map[string]float64{"2019年": 120043}},
		},
		Sources: []dashboard.SourceInfo{{Dataset: dashboard.DatasetMonthly, Range: "訪日_月間", Rows: 2, Fingerprint: "abc"}},
	}
}

func readBack(t *testing.T, st *dashboard.State) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, st))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteCreatesSheetPerDataset(t *testing.T) {
	f := readBack(t, sampleState())

	assert.Equal(t, []string{
		SheetMonthly, SheetCountryLatest, SheetAnnual, SheetLongTerm, SheetSpecialNotes,
		SheetMonthlyByYear, SheetCountryMonthly, SheetCountryByYear, SheetSources,
	}, f.GetSheetList())
}

func TestWriteMonthlyRows(t *testing.T) {
	f := readBack(t, sampleState())

	rows, err := f.GetRows(SheetMonthly)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"月", "訪日外客数", "前年同月", "前年同月比", "前月", "前月比"}, rows[0])
	assert.Equal(t, []string{"2026-01", "4012345", "3987654", "0.6", "3765432", "6.6"}, rows[1])
}

func TestWriteKeepsExtraCountriesAndRanks(t *testing.T) {
	f := readBack(t, sampleState())

	countries, err := f.GetRows(SheetCountryLatest)
	require.NoError(t, err)
	require.Len(t, countries, 3)
	assert.Equal(t, "クルーズ", countries[2][1])

	annual, err := f.GetRows(SheetAnnual)
	require.NoError(t, err)
	require.Len(t, annual, 3)
	assert.Equal(t, []string{"2025", "42000000", "15.6", "2", "韓国", "8800000"}, annual[2])
}

func TestWriteLeavesUnreportedYearsBlank(t *testing.T) {
	f := readBack(t, sampleState())

	rows, err := f.GetRows(SheetCountryByYear)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"国", "2019年", "2020年"}, rows[0])
	assert.Equal(t, []string{"韓国", "5584597", "487939"}, rows[1])
	assert.Equal(t, []string{"ロシア", "120043"}, rows[2])
}

func TestWriteEmptyState(t *testing.T) {
	f := readBack(t, dashboard.IdleState())

	rows, err := f.GetRows(SheetMonthly)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "only the header row")
	assert.Len(t, f.GetSheetList(), 9)
}
