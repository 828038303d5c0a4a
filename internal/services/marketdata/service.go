// Package marketdata wraps the upstream provider with rate limiting, a TTL
// response cache, retry-with-backoff on rate limit errors, and normalization
// of inconsistent balance sheet field names.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/mizan/internal/common"
	"github.com/ternarybob/mizan/internal/interfaces"
	"github.com/ternarybob/mizan/internal/models"
	"github.com/ternarybob/mizan/internal/yahoo"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 10 * time.Second
)

// Service is the data access adapter for stock lookups
type Service struct {
	provider     interfaces.MarketDataProvider
	cache        *ttlCache
	gate         *requestGate
	logger       arbor.ILogger
	maxRetries   int
	historyRange string

	backoffInitial time.Duration
	backoffMax     time.Duration
}

// NewService creates a market data service around a provider client.
// The gate and cache are owned by the service so tests can build isolated
// instances without cross-test interference.
func NewService(provider interfaces.MarketDataProvider, cfg *common.ProviderConfig, cacheCfg *common.CacheConfig, logger arbor.ILogger) *Service {
	return &Service{
		provider:       provider,
		cache:          newTTLCache(cacheCfg.TTL),
		gate:           newRequestGate(cfg.MinRequestInterval),
		logger:         logger,
		maxRetries:     cfg.MaxRetries,
		historyRange:   cfg.HistoryRange,
		backoffInitial: initialBackoff,
		backoffMax:     maxBackoff,
	}
}

// GetStockData returns a full snapshot for the symbol: price history,
// normalized balance sheet record, and company profile. Results are served
// from cache within the TTL. Any unrecoverable failure returns an error;
// callers surface it as the generic invalid-symbol / fetch-failed case.
func (s *Service) GetStockData(ctx context.Context, symbol string) (*models.StockSnapshot, error) {
	cacheKey := "stock_data:" + symbol

	if cached, ok := s.cache.Get(cacheKey); ok {
		s.logger.Debug().
			Str("symbol", symbol).
			Msg("Cache hit for stock data")
		return cached.(*models.StockSnapshot), nil
	}

	if err := s.gate.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request gate wait cancelled: %w", err)
	}

	history, err := s.fetchHistory(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history for %s: %w", symbol, err)
	}

	statement, profile, err := s.fetchQuoteSummary(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote summary for %s: %w", symbol, err)
	}

	// No balance sheet at all is treated the same as an invalid symbol
	if len(statement) == 0 {
		return nil, fmt.Errorf("no balance sheet data for %s", symbol)
	}

	snapshot := &models.StockSnapshot{
		Symbol:     symbol,
		History:    history,
		Financials: normalizeFinancials(statement),
		Profile:    profile,
		FetchedAt:  time.Now(),
	}

	s.cache.Set(cacheKey, snapshot)
	s.logger.Debug().
		Str("symbol", symbol).
		Int("bars", len(history)).
		Msg("Cached stock data")

	return snapshot, nil
}

// SweepCache evicts expired cache entries and returns the eviction count
func (s *Service) SweepCache() int {
	return s.cache.Sweep()
}

// PurgeCache drops every cached response
func (s *Service) PurgeCache() {
	s.cache.Purge()
}

func (s *Service) fetchHistory(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	var history []models.PriceBar
	err := s.withRetry(ctx, symbol, "chart", func() error {
		var err error
		history, err = s.provider.GetChart(ctx, symbol, s.historyRange)
		return err
	})
	return history, err
}

func (s *Service) fetchQuoteSummary(ctx context.Context, symbol string) (map[string]float64, *models.CompanyProfile, error) {
	var (
		statement map[string]float64
		profile   *models.CompanyProfile
	)
	err := s.withRetry(ctx, symbol, "quote_summary", func() error {
		var err error
		statement, profile, err = s.provider.GetQuoteSummary(ctx, symbol)
		return err
	})
	return statement, profile, err
}

// withRetry runs fn, retrying with exponential backoff only when the
// provider reports rate limiting. Any other error propagates immediately.
func (s *Service) withRetry(ctx context.Context, symbol, operation string, fn func() error) error {
	backoff := s.backoffInitial

	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rateLimitErr *yahoo.RateLimitError
		if !errors.As(err, &rateLimitErr) {
			return err
		}
		if attempt == s.maxRetries {
			return fmt.Errorf("rate limited after %d retries: %w", s.maxRetries, err)
		}

		wait := backoff
		if rateLimitErr.RetryAfter > wait {
			wait = rateLimitErr.RetryAfter
		}
		if wait > s.backoffMax {
			wait = s.backoffMax
		}

		s.logger.Warn().
			Str("symbol", symbol).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Dur("backoff", wait).
			Msg("Provider rate limited, backing off")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff *= 2
	}
}
