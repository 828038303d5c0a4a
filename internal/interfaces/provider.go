// Package interfaces defines service contracts used for dependency injection.
package interfaces

import (
	"context"

	"github.com/ternarybob/mizan/internal/models"
)

// MarketDataProvider is the upstream market data API surface.
// Implementations return typed errors so callers can distinguish
// rate limiting from other failures.
type MarketDataProvider interface {
	// GetChart retrieves daily price history for a symbol over a range
	// such as "1y".
	GetChart(ctx context.Context, symbol string, rng string) ([]models.PriceBar, error)

	// GetQuoteSummary retrieves the most recent balance sheet statement as a
	// raw field map plus the company profile. An empty field map means the
	// provider had no balance sheet for the symbol.
	GetQuoteSummary(ctx context.Context, symbol string) (map[string]float64, *models.CompanyProfile, error)
}
