// Package dashboard runs load cycles over the visitor statistics ranges and
// holds the resulting dashboard state.
package dashboard

import (
	"time"

	"github.com/iwvelando/visitor-stats/internal/records"
	"github.com/iwvelando/visitor-stats/pkg/datetime"
)

// Status is the phase of a load cycle.
type Status string

// Load cycle phases.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Dataset names, in load order.
const (
	DatasetMonthly        = "monthly"
	DatasetCountryLatest  = "countryLatest"
	DatasetAnnual         = "annual"
	DatasetLongTerm       = "longTerm"
	DatasetSpecialNotes   = "specialNotes"
	DatasetMonthlyByYear  = "monthlyByYear"
	DatasetCountryMonthly = "countryMonthly"
	DatasetCountryByYear  = "countryByYear"
)

// SourceInfo describes the raw range behind one dataset of a cycle.
type SourceInfo struct {
	Dataset     string `json:"dataset"`
	Range       string `json:"range"`
	Rows        int    `json:"rows"`
	Fingerprint string `json:"fingerprint"`
}

// State is the complete output of one load cycle. It is built once and
// replaced wholesale by the next cycle; readers must not modify it.
type State struct {
	CycleID        string    `json:"cycleId"`
	Status         Status    `json:"status"`
	Error          string    `json:"error,omitempty"`
	StartedAt      time.Time `json:"startedAt"`
	CompletedAt    time.Time `json:"completedAt"`
	ReportingMonth string    `json:"reportingMonth,omitempty"`

	Monthly        []records.MonthlyRecord       `json:"monthly"`
	Countries      records.CountryBreakdown      `json:"countries"`
	Annual         []records.AnnualRecord        `json:"annual"`
	LongTerm       []records.LongTermPoint       `json:"longTerm"`
	SpecialNotes   []records.SpecialNote         `json:"specialNotes"`
	YearlyMonthly  []records.YearlyMonthlyPoint  `json:"yearlyMonthly"`
	CountryMonthly []records.CountryMonthlyPoint `json:"countryMonthly"`
	CountryYears   []records.CountryYearRow      `json:"countryYears"`

	Sources []SourceInfo `json:"sources"`
}

// IdleState is the state reported before the first cycle finishes.
func IdleState() *State {
	return emptyState(StatusIdle)
}

// emptyState returns a state in status whose datasets are empty rather than
// nil, so every state encodes "no data" as [].
func emptyState(status Status) *State {
	return &State{
		Status:         status,
		Monthly:        []records.MonthlyRecord{},
		Countries:      records.CountryBreakdown{Countries: []records.CountrySnapshot{}},
		Annual:         []records.AnnualRecord{},
		LongTerm:       []records.LongTermPoint{},
		SpecialNotes:   []records.SpecialNote{},
		YearlyMonthly:  []records.YearlyMonthlyPoint{},
		CountryMonthly: []records.CountryMonthlyPoint{},
		CountryYears:   []records.CountryYearRow{},
		Sources:        []SourceInfo{},
	}
}

// Loading reports whether the cycle that produced s was still running.
func (s *State) Loading() bool {
	return s.Status == StatusLoading
}

// Ready reports whether the cycle completed without an unexpected failure.
func (s *State) Ready() bool {
	return s.Status == StatusReady
}

// LatestMonth returns the monthly record with the newest month key. Records
// whose key does not parse only win when no key parses.
func (s *State) LatestMonth() (records.MonthlyRecord, bool) {
	if len(s.Monthly) == 0 {
		return records.MonthlyRecord{}, false
	}
	latest := s.Monthly[0]
	for _, m := range s.Monthly[1:] {
		before, err := datetime.MonthBeforeMonth(latest.Month, m.Month)
		if err != nil {
			if _, perr := datetime.ParseMonthKey(latest.Month); perr != nil {
				if _, merr := datetime.ParseMonthKey(m.Month); merr == nil {
					latest = m
				}
			}
			continue
		}
		if before {
			latest = m
		}
	}
	return latest, true
}
