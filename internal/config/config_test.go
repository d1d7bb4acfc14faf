package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/visitor-stats/pkg/constants"
)

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "config.yaml")
	content := `source:
  spreadsheetId: sheet-123
  apiKey: key-abc
  pacingDelay: 250ms
ranges:
  monthly: Monthly
dashboard:
  reportingMonth: "2025-12"
`
	if err := os.WriteFile(valid, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: filepath.Join(dir, "nonexistent.yaml"),
			wantError:  true,
		},
		{
			name:       "Valid config file",
			configPath: valid,
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if config.Source.SpreadsheetID != "sheet-123" {
				t.Errorf("SpreadsheetID = %q, want sheet-123", config.Source.SpreadsheetID)
			}
			if config.Source.PacingDelay != 250*time.Millisecond {
				t.Errorf("PacingDelay = %v, want 250ms", config.Source.PacingDelay)
			}
			if config.Ranges.Monthly != "Monthly" {
				t.Errorf("Ranges.Monthly = %q, want Monthly", config.Ranges.Monthly)
			}
			if config.Ranges.Annual != constants.RangeAnnual {
				t.Errorf("Ranges.Annual = %q, want default %q", config.Ranges.Annual, constants.RangeAnnual)
			}
			if config.Dashboard.ReportingMonth != "2025-12" {
				t.Errorf("ReportingMonth = %q, want 2025-12", config.Dashboard.ReportingMonth)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	conf := Default()

	if conf.Source.BaseURL != constants.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", conf.Source.BaseURL, constants.DefaultBaseURL)
	}
	if conf.Source.MaxRetries != constants.DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", conf.Source.MaxRetries, constants.DefaultMaxRetries)
	}
	if conf.Source.RetryBackoff != time.Second {
		t.Errorf("RetryBackoff = %v, want 1s", conf.Source.RetryBackoff)
	}
	if conf.Source.PacingDelay != 150*time.Millisecond {
		t.Errorf("PacingDelay = %v, want 150ms", conf.Source.PacingDelay)
	}
	if len(conf.Dashboard.Countries) != len(DefaultCountries) {
		t.Errorf("Countries has %d entries, want %d", len(conf.Dashboard.Countries), len(DefaultCountries))
	}
	if conf.Dashboard.PhaseColors["コロナ影響期"] != "#dc2626" {
		t.Errorf("PhaseColors lost the pandemic phase: %v", conf.Dashboard.PhaseColors)
	}
	if conf.Dashboard.ErrorMessage != constants.DefaultLoadErrorMessage {
		t.Errorf("ErrorMessage = %q", conf.Dashboard.ErrorMessage)
	}
	if conf.Logging.Level != "info" || conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("unexpected logging/output defaults: %+v %+v", conf.Logging, conf.Output)
	}
}

func TestRangeNamesOrder(t *testing.T) {
	names := Default().Ranges.RangeNames()
	expected := []string{
		constants.RangeMonthly,
		constants.RangeCountryLatest,
		constants.RangeAnnual,
		constants.RangeLongTerm,
		constants.RangeSpecialNotes,
		constants.RangeMonthlyByYear,
		constants.RangeCountryMonthly,
		constants.RangeCountryByYear,
	}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("RangeNames() = %v, want %v", names, expected)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("VISITOR_STATS_SOURCE_APIKEY", "from-env")
	t.Setenv("VISITOR_STATS_DASHBOARD_REPORTINGMONTH", "2026-02")

	conf, err := LoadConfigurationFromReader(strings.NewReader("source:\n  apiKey: from-file\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Source.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", conf.Source.APIKey)
	}
	if conf.Dashboard.ReportingMonth != "2026-02" {
		t.Errorf("ReportingMonth = %q, want 2026-02", conf.Dashboard.ReportingMonth)
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader("source: [unclosed"))
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("failed to load example config: %v", err)
	}
	if conf.Source.SpreadsheetID == "" {
		t.Error("example config should set a spreadsheet id")
	}
	if len(conf.ValidateConfiguration()) > 1 {
		t.Errorf("example config should only warn about the api key, got %v", conf.ValidateConfiguration())
	}
}
