package interfaces

import (
	"context"

	"github.com/ternarybob/mizan/internal/models"
)

// StockDataService fetches and normalizes market data for a ticker
type StockDataService interface {
	// GetStockData returns a snapshot for the symbol, served from cache when
	// fresh. Any failure (invalid symbol, network, empty balance sheet)
	// returns an error; callers surface a generic fetch-failure message.
	GetStockData(ctx context.Context, symbol string) (*models.StockSnapshot, error)
}

// ScreeningService evaluates a company against the compliance rules
type ScreeningService interface {
	// Screen never returns an error: inputs that cannot support a verdict
	// and internal faults both yield an insufficient-data result.
	Screen(record *models.FinancialRecord, profile *models.CompanyProfile) models.ScreeningResult
}
