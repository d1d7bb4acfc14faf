package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/internal/normalize"
	"github.com/iwvelando/visitor-stats/internal/sheets"
	"github.com/iwvelando/visitor-stats/pkg/checksum"
	"github.com/iwvelando/visitor-stats/pkg/constants"
	"go.uber.org/zap"
)

// ErrNormalize marks a load cycle halted by an unexpected failure inside a
// dataset transform.
var ErrNormalize = errors.New("dataset normalization failed")

type step struct {
	dataset   string
	rangeName string
	apply     func(st *State, rows [][]string)
}

// Loader runs load cycles: every dataset is fetched and normalized in a
// fixed order, one range at a time, with a pacing delay between reads.
type Loader struct {
	logger         *zap.Logger
	fetcher        sheets.RangeFetcher
	normalizer     *normalize.Normalizer
	ranges         config.RangeConfig
	reportingMonth string
	errorMessage   string
	pacing         time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
	now            func() time.Time
}

// NewLoader builds a Loader reading through fetcher with the ranges and
// lookup tables of conf.
func NewLoader(logger *zap.Logger, fetcher sheets.RangeFetcher, conf *config.Configuration) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	pacing := conf.Source.PacingDelay
	if pacing < 0 {
		pacing = 0
	}
	message := strings.TrimSpace(conf.Dashboard.ErrorMessage)
	if message == "" {
		message = constants.DefaultLoadErrorMessage
	}

	return &Loader{
		logger:         logger,
		fetcher:        fetcher,
		normalizer:     normalize.New(normalize.Options{Countries: conf.Dashboard.Countries}),
		ranges:         conf.Ranges,
		reportingMonth: strings.TrimSpace(conf.Dashboard.ReportingMonth),
		errorMessage:   message,
		pacing:         pacing,
		sleep:          sheets.Sleep,
		now:            time.Now,
	}
}

func (l *Loader) steps() []step {
	n := l.normalizer
	return []step{
		{DatasetMonthly, l.ranges.Monthly, func(st *State, rows [][]string) {
			st.Monthly = n.Monthly(rows)
		}},
		{DatasetCountryLatest, l.ranges.CountryLatest, func(st *State, rows [][]string) {
			st.Countries = n.CountryBreakdown(rows)
		}},
		{DatasetAnnual, l.ranges.Annual, func(st *State, rows [][]string) {
			st.Annual = n.Annual(rows)
		}},
		{DatasetLongTerm, l.ranges.LongTerm, func(st *State, rows [][]string) {
			st.LongTerm = n.LongTerm(rows)
		}},
		{DatasetSpecialNotes, l.ranges.SpecialNotes, func(st *State, rows [][]string) {
			st.ReportingMonth = l.currentMonth(st)
			st.SpecialNotes = n.SpecialNotes(rows, st.ReportingMonth)
		}},
		{DatasetMonthlyByYear, l.ranges.MonthlyByYear, func(st *State, rows [][]string) {
			st.YearlyMonthly = n.YearlyMonthly(rows)
		}},
		{DatasetCountryMonthly, l.ranges.CountryMonthly, func(st *State, rows [][]string) {
			st.CountryMonthly = n.CountryMonthly(rows)
		}},
		{DatasetCountryByYear, l.ranges.CountryByYear, func(st *State, rows [][]string) {
			st.CountryYears = n.CountryByYear(rows)
		}},
	}
}

// currentMonth is the configured reporting month, or else the newest
// monthly record's month.
func (l *Loader) currentMonth(st *State) string {
	if l.reportingMonth != "" {
		return l.reportingMonth
	}
	if latest, ok := st.LatestMonth(); ok {
		return latest.Month
	}
	return ""
}

// Load runs one load cycle. A range that cannot be read leaves its dataset
// empty and the cycle continues. An unexpected failure while normalizing
// halts the cycle: the returned state then carries StatusError, the
// user-facing error message and no datasets, and the error wraps
// ErrNormalize.
func (l *Loader) Load(ctx context.Context) (*State, error) {
	return l.run(ctx, l.steps())
}

func (l *Loader) run(ctx context.Context, steps []step) (*State, error) {
	st := emptyState(StatusLoading)
	st.CycleID = uuid.NewString()
	st.StartedAt = l.now()
	logger := l.logger.With(zap.String("cycle", st.CycleID))
	logger.Info("load cycle started", zap.String("op", "dashboard.Load"))

	for i, s := range steps {
		if i > 0 {
			if err := l.sleep(ctx, l.pacing); err != nil {
				return l.fail(logger, st, fmt.Errorf("load cycle interrupted before %s: %w", s.dataset, err))
			}
		}

		rows := l.fetcher.Fetch(ctx, s.rangeName)
		st.Sources = append(st.Sources, SourceInfo{
			Dataset:     s.dataset,
			Range:       s.rangeName,
			Rows:        len(rows),
			Fingerprint: checksum.Rows(rows),
		})
		if len(rows) < 2 {
			logger.Warn("dataset has no data",
				zap.String("op", "dashboard.Load"),
				zap.String("dataset", s.dataset),
				zap.String("range", s.rangeName),
				zap.Int("rows", len(rows)),
			)
		}

		if err := apply(s, st, rows); err != nil {
			return l.fail(logger, st, err)
		}
	}

	st.Status = StatusReady
	st.CompletedAt = l.now()
	logger.Info("load cycle completed",
		zap.String("op", "dashboard.Load"),
		zap.Int("monthly", len(st.Monthly)),
		zap.Int("countries", len(st.Countries.Countries)),
		zap.Int("annual", len(st.Annual)),
		zap.Int("longTerm", len(st.LongTerm)),
		zap.Int("specialNotes", len(st.SpecialNotes)),
		zap.Int("yearlyMonthly", len(st.YearlyMonthly)),
		zap.Int("countryMonthly", len(st.CountryMonthly)),
		zap.Int("countryYears", len(st.CountryYears)),
		zap.Duration("duration", st.CompletedAt.Sub(st.StartedAt)),
	)
	return st, nil
}

// apply runs a dataset transform, turning a panic into ErrNormalize.
func apply(s step, st *State, rows [][]string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrNormalize, s.dataset, r)
		}
	}()
	s.apply(st, rows)
	return nil
}

func (l *Loader) fail(logger *zap.Logger, st *State, err error) (*State, error) {
	logger.Error("load cycle failed",
		zap.String("op", "dashboard.Load"),
		zap.Error(err),
	)
	failed := emptyState(StatusError)
	failed.CycleID = st.CycleID
	failed.Error = l.errorMessage
	failed.StartedAt = st.StartedAt
	failed.CompletedAt = l.now()
	failed.Sources = append(failed.Sources, st.Sources...)
	return failed, err
}
