// Package testutil provides common utility functions for testing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/internal/records"
)

// Fake spreadsheet credentials accepted by SheetServer.
const (
	SpreadsheetID = "test-sheet"
	APIKey        = "test-key"
)

// SheetServer is an in-memory stand-in for the Sheets values API.
type SheetServer struct {
	*httptest.Server

	mu       sync.Mutex
	ranges   map[string][][]string
	statuses map[string][]int
	requests []string
}

// NewSheetServer starts a SheetServer serving ranges. It is closed when the
// test ends.
func NewSheetServer(t testing.TB, ranges map[string][][]string) *SheetServer {
	t.Helper()
	s := &SheetServer{
		ranges:   make(map[string][][]string, len(ranges)),
		statuses: make(map[string][]int),
	}
	for name, rows := range ranges {
		s.ranges[name] = rows
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// QueueStatus makes the next reads of rangeName answer with codes, in order,
// before the range is served normally.
func (s *SheetServer) QueueStatus(rangeName string, codes ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[rangeName] = append(s.statuses[rangeName], codes...)
}

// Requests returns the range names read so far, in order.
func (s *SheetServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// SourceConfig returns a source configuration pointing at the server with
// retries enabled and no delays.
func (s *SheetServer) SourceConfig() config.SourceConfig {
	return config.SourceConfig{
		BaseURL:       s.URL,
		SpreadsheetID: SpreadsheetID,
		APIKey:        APIKey,
		MaxRetries:    2,
	}
}

func (s *SheetServer) handle(w http.ResponseWriter, r *http.Request) {
	prefix := "/v4/spreadsheets/" + SpreadsheetID + "/values/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Get("key") != APIKey {
		http.Error(w, "invalid key", http.StatusForbidden)
		return
	}
	rangeName := strings.TrimPrefix(r.URL.Path, prefix)

	s.mu.Lock()
	s.requests = append(s.requests, rangeName)
	var status int
	if queued := s.statuses[rangeName]; len(queued) > 0 {
		status = queued[0]
		s.statuses[rangeName] = queued[1:]
	}
	rows, ok := s.ranges[rangeName]
	s.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !ok {
		http.Error(w, "unable to parse range", http.StatusBadRequest)
		return
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, c := range row {
			values[i][j] = c
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"range":          rangeName,
		"majorDimension": "ROWS",
		"values":         values,
	})
}

// FindMonthly finds a monthly record by month key.
// Returns a pointer to the record if found, nil otherwise.
func FindMonthly(recs []records.MonthlyRecord, month string) *records.MonthlyRecord {
	for i := range recs {
		if recs[i].Month == month {
			return &recs[i]
		}
	}
	return nil
}

// FindCountryYear finds a country row in the country-by-year matrix.
func FindCountryYear(rows []records.CountryYearRow, country string) *records.CountryYearRow {
	for i := range rows {
		if rows[i].Country == country {
			return &rows[i]
		}
	}
	return nil
}
