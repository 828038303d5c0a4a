package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/mizan/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the Yahoo Finance query API.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultUserAgent identifies the application to the provider.
	DefaultUserAgent = "Mizan/1.0 (+https://github.com/ternarybob/mizan)"

	// defaultRetryAfter applies when a 429 carries no Retry-After header.
	defaultRetryAfter = time.Second
)

// quoteSummaryModules are the data modules requested for every lookup.
const quoteSummaryModules = "balanceSheetHistory,summaryProfile,price,financialData"

// Client is a Yahoo Finance API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Yahoo Finance API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: defaultRetryAfter}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("Yahoo API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: retryAfter(resp)}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// retryAfter parses the Retry-After header from a 429 response.
func retryAfter(resp *http.Response) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryAfter
}

// GetChart retrieves daily price history for a symbol.
// Range values follow the API convention: "1mo", "3mo", "6mo", "1y", ...
func (c *Client) GetChart(ctx context.Context, symbol string, rng string) ([]models.PriceBar, error) {
	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", "1d")

	var result chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params, &result); err != nil {
		return nil, err
	}

	if result.Chart.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    result.Chart.Error.Description,
			Endpoint:   "/v8/finance/chart/" + symbol,
		}
	}
	if len(result.Chart.Result) == 0 {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "no chart data for symbol",
			Endpoint:   "/v8/finance/chart/" + symbol,
		}
	}

	chart := result.Chart.Result[0]
	if len(chart.Indicators.Quote) == 0 {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "chart response has no quote data",
			Endpoint:   "/v8/finance/chart/" + symbol,
		}
	}

	quote := chart.Indicators.Quote[0]
	bars := make([]models.PriceBar, 0, len(chart.Timestamp))
	for i, ts := range chart.Timestamp {
		// Null close means no session data for that day
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// GetQuoteSummary retrieves the most recent balance sheet statement as a raw
// field map plus the company profile for a symbol. The field map is empty
// when the provider has no balance sheet data.
func (c *Client) GetQuoteSummary(ctx context.Context, symbol string) (map[string]float64, *models.CompanyProfile, error) {
	params := url.Values{}
	params.Set("modules", quoteSummaryModules)

	var result quoteSummaryResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), params, &result); err != nil {
		return nil, nil, err
	}

	if result.QuoteSummary.Error != nil {
		return nil, nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    result.QuoteSummary.Error.Description,
			Endpoint:   "/v10/finance/quoteSummary/" + symbol,
		}
	}
	if len(result.QuoteSummary.Result) == 0 {
		return nil, nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "no quote summary for symbol",
			Endpoint:   "/v10/finance/quoteSummary/" + symbol,
		}
	}

	summary := result.QuoteSummary.Result[0]

	var statement map[string]float64
	if summary.BalanceSheetHistory != nil && len(summary.BalanceSheetHistory.Statements) > 0 {
		// Statements are ordered most recent first
		statement = numericFields(summary.BalanceSheetHistory.Statements[0])
	} else {
		statement = map[string]float64{}
	}

	profile := &models.CompanyProfile{Symbol: symbol}
	if summary.SummaryProfile != nil {
		profile.Sector = summary.SummaryProfile.Sector
		profile.Industry = summary.SummaryProfile.Industry
		profile.BusinessSummary = summary.SummaryProfile.LongBusinessSummary
	}
	if summary.Price != nil {
		profile.LongName = summary.Price.LongName
		if profile.LongName == "" {
			profile.LongName = summary.Price.ShortName
		}
		if summary.Price.MarketCap.Raw != nil {
			profile.MarketCap = *summary.Price.MarketCap.Raw
		}
	}
	if summary.FinancialData != nil && summary.FinancialData.TotalCash.Raw != nil {
		profile.TotalCash = *summary.FinancialData.TotalCash.Raw
	}

	// Investment and receivables figures live on the balance sheet statement
	profile.ShortTermInvestments = statement["shortTermInvestments"]
	profile.LongTermInvestments = statement["longTermInvestments"]
	profile.NetReceivables = statement["netReceivables"]

	return statement, profile, nil
}
