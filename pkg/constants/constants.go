// Package constants provides shared constants for the visitor-stats application.
package constants

import "time"

// MonthKeyLayout is the format of month keys in the source sheets and in all
// output, e.g. "2026-01".
const MonthKeyLayout = "2006-01"

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// YearSuffix marks year column headers in the source sheets, e.g. "2020年"
	YearSuffix = "年"
)

// Unit constants
const (
	// Man is the Japanese counting unit of ten thousand used for visitor totals
	Man = 10000

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for rounding percentages (1 decimal place)
	DecimalPrecision = 10
)

// Sheet fetch defaults
const (
	// DefaultBaseURL is the Google Sheets API endpoint
	DefaultBaseURL = "https://sheets.googleapis.com"

	// DefaultMaxRetries is how many times a rate-limited range read is retried
	DefaultMaxRetries = 2

	// DefaultRetryBackoff is the fixed wait after a rate-limit response
	DefaultRetryBackoff = time.Second

	// DefaultPacingDelay is the wait between sequential range reads
	DefaultPacingDelay = 150 * time.Millisecond

	// DefaultRequestTimeout bounds a single range read
	DefaultRequestTimeout = 15 * time.Second
)

// Default range names of the visitor statistics workbook
const (
	RangeMonthly        = "訪日_月間"
	RangeCountryLatest  = "訪日_国別"
	RangeAnnual         = "訪日_年間"
	RangeLongTerm       = "訪日_長期推移"
	RangeSpecialNotes   = "訪日_特記"
	RangeMonthlyByYear  = "訪日_月別推移"
	RangeCountryMonthly = "訪日_国別月間"
	RangeCountryByYear  = "訪日_国別年間"
)

// DefaultLoadErrorMessage is surfaced to users when a load cycle fails.
const DefaultLoadErrorMessage = "データの読み込みに失敗しました"

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON emits the dashboard state as JSON
	OutputFormatJSON = "json"

	// OutputFormatXLSX writes an Excel workbook
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. VISITOR_STATS_SOURCE_APIKEY
	EnvPrefix = "VISITOR_STATS"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Insight defaults
const (
	// DefaultRankingLimit is how many countries the ranking keeps
	DefaultRankingLimit = 15

	// DefaultRecentMonths is how many monthly records the trend view keeps
	DefaultRecentMonths = 13
)
