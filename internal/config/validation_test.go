package config

import (
	"strings"
	"testing"
)

func validConfig() *Configuration {
	conf := Default()
	conf.Source.SpreadsheetID = "sheet-123"
	conf.Source.APIKey = "key-abc"
	return conf
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Configuration)
		contains string
	}{
		{
			name:     "Missing spreadsheet id",
			mutate:   func(c *Configuration) { c.Source.SpreadsheetID = "" },
			contains: "spreadsheetId",
		},
		{
			name:     "Missing api key",
			mutate:   func(c *Configuration) { c.Source.APIKey = " " },
			contains: "apiKey",
		},
		{
			name:     "Negative retries",
			mutate:   func(c *Configuration) { c.Source.MaxRetries = -1 },
			contains: "maxRetries",
		},
		{
			name:     "Negative pacing",
			mutate:   func(c *Configuration) { c.Source.PacingDelay = -1 },
			contains: "negative source delays",
		},
		{
			name:     "Duplicate range",
			mutate:   func(c *Configuration) { c.Ranges.Annual = c.Ranges.Monthly },
			contains: "more than one dataset",
		},
		{
			name:     "Bad reporting month",
			mutate:   func(c *Configuration) { c.Dashboard.ReportingMonth = "2026/01" },
			contains: "reportingMonth",
		},
		{
			name:     "Unknown highlight country",
			mutate:   func(c *Configuration) { c.Dashboard.HighlightCountries = []string{"火星"} },
			contains: "highlightCountries",
		},
		{
			name:     "Unsupported output format",
			mutate:   func(c *Configuration) { c.Output.Format = "xml" },
			contains: "output.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConfig()
			tt.mutate(conf)
			warnings := conf.ValidateConfiguration()
			if len(warnings) != 1 {
				t.Fatalf("expected exactly one warning, got %v", warnings)
			}
			if !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("warning %q should mention %q", warnings[0], tt.contains)
			}
		})
	}
}

func TestValidateConfigurationClean(t *testing.T) {
	if warnings := validConfig().ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestValidateConfigurationEmptyCountries(t *testing.T) {
	conf := validConfig()
	conf.Dashboard.Countries = nil
	conf.Dashboard.HighlightCountries = nil

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "countries is empty") {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}
