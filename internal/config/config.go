// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/visitor-stats/pkg/constants"
	"github.com/iwvelando/visitor-stats/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for visitor-stats.
type Configuration struct {
	Source    SourceConfig    `yaml:"source"`
	Ranges    RangeConfig     `yaml:"ranges"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
}

// SourceConfig identifies the remote spreadsheet and how it is read.
type SourceConfig struct {
	BaseURL        string        `yaml:"baseUrl"`
	SpreadsheetID  string        `yaml:"spreadsheetId"`
	APIKey         string        `yaml:"apiKey"`
	MaxRetries     int           `yaml:"maxRetries"`
	RetryBackoff   time.Duration `yaml:"retryBackoff"`
	PacingDelay    time.Duration `yaml:"pacingDelay"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// RangeConfig names the sheet range read for each dataset.
type RangeConfig struct {
	Monthly        string `yaml:"monthly"`
	CountryLatest  string `yaml:"countryLatest"`
	Annual         string `yaml:"annual"`
	LongTerm       string `yaml:"longTerm"`
	SpecialNotes   string `yaml:"specialNotes"`
	MonthlyByYear  string `yaml:"monthlyByYear"`
	CountryMonthly string `yaml:"countryMonthly"`
	CountryByYear  string `yaml:"countryByYear"`
}

// DashboardConfig holds the lookup tables shared by normalization and the
// derived views.
type DashboardConfig struct {
	// ReportingMonth pins the special-notes filter (YYYY-MM). When empty the
	// newest monthly record decides.
	ReportingMonth     string            `yaml:"reportingMonth,omitempty"`
	Countries          []string          `yaml:"countries"`
	HighlightCountries []string          `yaml:"highlightCountries"`
	PhaseColors        map[string]string `yaml:"phaseColors"`
	YearColors         map[string]string `yaml:"yearColors"`
	DisruptedYears     []string          `yaml:"disruptedYears"`
	ErrorMessage       string            `yaml:"errorMessage"`
	RankingLimit       int               `yaml:"rankingLimit"`
	RecentMonths       int               `yaml:"recentMonths"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, xlsx
}

// DefaultCountries is the enumerated country set of the source workbook.
var DefaultCountries = []string{
	"韓国", "中国", "台湾", "香港", "タイ", "シンガポール", "マレーシア", "インドネシア",
	"フィリピン", "ベトナム", "インド", "豪州", "米国", "カナダ", "メキシコ", "英国",
	"フランス", "ドイツ", "イタリア", "スペイン", "ロシア", "北欧", "中東", "その他",
}

// DefaultHighlightCountries are the markets that get a card of their own.
var DefaultHighlightCountries = []string{"韓国", "中国", "台湾", "香港", "米国", "タイ"}

// DefaultPhaseColors maps long-term phase labels to chart colors.
var DefaultPhaseColors = map[string]string{
	"初期成長期":  "#94a3b8",
	"本格成長期":  "#64748b",
	"ピーク期":   "#1e40af",
	"コロナ影響期": "#dc2626",
	"回復・成長期": "#1a1a1a",
}

// DefaultYearColors maps year labels to series colors.
var DefaultYearColors = map[string]string{
	"2019年": "#60a5fa",
	"2020年": "#f87171",
	"2021年": "#fca5a5",
	"2022年": "#fbbf24",
	"2023年": "#34d399",
	"2024年": "#a78bfa",
	"2025年": "#3b82f6",
	"2026年": "#1e40af",
}

// DefaultDisruptedYears are the pandemic years flagged in growth tables.
var DefaultDisruptedYears = []string{"2020年", "2021年"}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("source.baseUrl", constants.DefaultBaseURL)
	v.SetDefault("source.spreadsheetId", "")
	v.SetDefault("source.apiKey", "")
	v.SetDefault("source.maxRetries", constants.DefaultMaxRetries)
	v.SetDefault("source.retryBackoff", constants.DefaultRetryBackoff)
	v.SetDefault("source.pacingDelay", constants.DefaultPacingDelay)
	v.SetDefault("source.requestTimeout", constants.DefaultRequestTimeout)

	v.SetDefault("ranges.monthly", constants.RangeMonthly)
	v.SetDefault("ranges.countryLatest", constants.RangeCountryLatest)
	v.SetDefault("ranges.annual", constants.RangeAnnual)
	v.SetDefault("ranges.longTerm", constants.RangeLongTerm)
	v.SetDefault("ranges.specialNotes", constants.RangeSpecialNotes)
	v.SetDefault("ranges.monthlyByYear", constants.RangeMonthlyByYear)
	v.SetDefault("ranges.countryMonthly", constants.RangeCountryMonthly)
	v.SetDefault("ranges.countryByYear", constants.RangeCountryByYear)

	v.SetDefault("dashboard.reportingMonth", "")
	v.SetDefault("dashboard.countries", DefaultCountries)
	v.SetDefault("dashboard.highlightCountries", DefaultHighlightCountries)
	v.SetDefault("dashboard.phaseColors", DefaultPhaseColors)
	v.SetDefault("dashboard.yearColors", DefaultYearColors)
	v.SetDefault("dashboard.disruptedYears", DefaultDisruptedYears)
	v.SetDefault("dashboard.errorMessage", constants.DefaultLoadErrorMessage)
	v.SetDefault("dashboard.rankingLimit", constants.DefaultRankingLimit)
	v.SetDefault("dashboard.recentMonths", constants.DefaultRecentMonths)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yml")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Unset keys fall back to defaults and every key can be
// overridden from the environment, e.g. VISITOR_STATS_SOURCE_APIKEY.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Default returns the built-in configuration with environment overrides
// applied.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Defaults are static and always decode.
		panic(err)
	}
	return conf
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// RangeNames returns the configured range names in load order.
func (r RangeConfig) RangeNames() []string {
	return []string{
		r.Monthly,
		r.CountryLatest,
		r.Annual,
		r.LongTerm,
		r.SpecialNotes,
		r.MonthlyByYear,
		r.CountryMonthly,
		r.CountryByYear,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. None of them stop a load cycle.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if strings.TrimSpace(c.Source.SpreadsheetID) == "" {
		warnings = append(warnings, "source.spreadsheetId is empty - every range read will fail")
	}
	if strings.TrimSpace(c.Source.APIKey) == "" {
		warnings = append(warnings, "source.apiKey is empty - set it in the config or VISITOR_STATS_SOURCE_APIKEY")
	}
	if c.Source.MaxRetries < 0 {
		warnings = append(warnings, fmt.Sprintf("source.maxRetries is negative (%d) - rate-limited reads will not be retried", c.Source.MaxRetries))
	}
	if c.Source.RetryBackoff < 0 || c.Source.PacingDelay < 0 {
		warnings = append(warnings, "negative source delays are treated as zero")
	}

	warnings = append(warnings, validation.ValidateRangeNames(c.Ranges.RangeNames())...)

	if w := validation.ValidateMonthKey("dashboard.reportingMonth", c.Dashboard.ReportingMonth); w != "" {
		warnings = append(warnings, w+" - no special notes will match")
	}
	warnings = append(warnings, validation.ValidateLabels("dashboard.highlightCountries", c.Dashboard.HighlightCountries, c.Dashboard.Countries)...)
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, fmt.Sprintf("output.format: %v", err))
		}
	}
	if len(c.Dashboard.Countries) == 0 {
		warnings = append(warnings, "dashboard.countries is empty - every country column will be treated as extra")
	}

	return warnings
}
