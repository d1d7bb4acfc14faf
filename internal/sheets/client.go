// Package sheets reads named ranges from the Google Sheets values API.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/pkg/constants"
	"go.uber.org/zap"
)

// RangeFetcher reads one named range and returns its rows. Implementations
// never fail: an unavailable range reads as no rows.
type RangeFetcher interface {
	Fetch(ctx context.Context, rangeName string) [][]string
}

// Client fetches ranges from a single spreadsheet.
type Client struct {
	logger        *zap.Logger
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	apiKey        string
	maxRetries    int
	backoff       time.Duration
	sleep         func(ctx context.Context, d time.Duration) error
}

// valuesResponse is the body of a spreadsheets.values.get call.
type valuesResponse struct {
	Range          string          `json:"range"`
	MajorDimension string          `json:"majorDimension"`
	Values         [][]interface{} `json:"values"`
}

// NewClient constructs a Client from the source configuration. A nil
// httpClient gets one with the configured request timeout.
func NewClient(logger *zap.Logger, src config.SourceConfig, httpClient *http.Client) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := src.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(src.BaseURL), "/")
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	maxRetries := src.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := src.RetryBackoff
	if backoff < 0 {
		backoff = 0
	}

	return &Client{
		logger:        logger,
		httpClient:    httpClient,
		baseURL:       baseURL,
		spreadsheetID: src.SpreadsheetID,
		apiKey:        src.APIKey,
		maxRetries:    maxRetries,
		backoff:       backoff,
		sleep:         Sleep,
	}
}

// Fetch reads rangeName. A rate-limited read waits the fixed backoff and is
// retried while the retry budget lasts. Every other failure, and an
// exhausted budget, is logged and yields an empty result.
func (c *Client) Fetch(ctx context.Context, rangeName string) [][]string {
	endpoint := c.rangeURL(rangeName)
	retries := c.maxRetries

	for attempt := 1; ; attempt++ {
		rows, status, err := c.get(ctx, endpoint)
		if err == nil {
			c.logger.Debug("range fetched",
				zap.String("op", "sheets.Fetch"),
				zap.String("range", rangeName),
				zap.Int("rows", len(rows)),
				zap.Int("attempt", attempt),
			)
			return rows
		}

		if status == http.StatusTooManyRequests && retries > 0 {
			retries--
			c.logger.Warn("range read rate-limited, backing off",
				zap.String("op", "sheets.Fetch"),
				zap.String("range", rangeName),
				zap.Duration("backoff", c.backoff),
				zap.Int("retriesLeft", retries),
			)
			if sleepErr := c.sleep(ctx, c.backoff); sleepErr != nil {
				c.logger.Error("range read abandoned",
					zap.String("op", "sheets.Fetch"),
					zap.String("range", rangeName),
					zap.Error(sleepErr),
				)
				return [][]string{}
			}
			continue
		}

		c.logger.Error("failed to fetch range",
			zap.String("op", "sheets.Fetch"),
			zap.String("range", rangeName),
			zap.Int("status", status),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return [][]string{}
	}
}

func (c *Client) rangeURL(rangeName string) string {
	query := url.Values{}
	query.Set("key", c.apiKey)
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?%s",
		c.baseURL,
		url.PathEscape(c.spreadsheetID),
		url.PathEscape(rangeName),
		query.Encode(),
	)
}

// get performs one read. status is 0 when no response was received.
func (c *Client) get(ctx context.Context, endpoint string) ([][]string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var body valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return toRows(body.Values), resp.StatusCode, nil
}

// toRows stringifies cells. Formatted reads return strings, but unformatted
// reads return numbers and booleans.
func toRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = stringify(v)
		}
		rows[i] = cells
	}
	return rows
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
