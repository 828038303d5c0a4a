package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/mizan/internal/calc"
	"github.com/ternarybob/mizan/internal/interfaces"
	"github.com/ternarybob/mizan/internal/models"
	"github.com/ternarybob/mizan/internal/services/export"
)

const fetchFailedMessage = "Unable to fetch data. Please check the stock symbol and try again."

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-^]{1,12}$`)

// AnalysisResponse is the payload for a full ticker analysis
type AnalysisResponse struct {
	Symbol    string                  `json:"symbol"`
	Profile   *models.CompanyProfile  `json:"profile"`
	DebtRatio *float64                `json:"debt_ratio"`
	Screening models.ScreeningResult  `json:"screening"`
	History   []models.PriceBar       `json:"history"`
	Metrics   map[string]string       `json:"metrics"`
	Record    *models.FinancialRecord `json:"financials"`
}

type AnalysisHandler struct {
	stockData interfaces.StockDataService
	screening interfaces.ScreeningService
	exporter  *export.Service
	logger    arbor.ILogger
	validate  *validator.Validate
}

func NewAnalysisHandler(stockData interfaces.StockDataService, screening interfaces.ScreeningService, exporter *export.Service, logger arbor.ILogger) *AnalysisHandler {
	validate := validator.New()
	validate.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return tickerPattern.MatchString(fl.Field().String())
	})

	return &AnalysisHandler{
		stockData: stockData,
		screening: screening,
		exporter:  exporter,
		logger:    logger,
		validate:  validate,
	}
}

// AnalyzeHandler handles GET /api/analysis?symbol=X
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbol, ok := h.requestedSymbol(w, r)
	if !ok {
		return
	}

	snapshot, err := h.stockData.GetStockData(r.Context(), symbol)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("symbol", symbol).
			Msg("Stock data fetch failed")
		WriteError(w, http.StatusBadGateway, fetchFailedMessage)
		return
	}

	debtRatio := calc.DebtRatio(snapshot.Financials)
	screening := h.screening.Screen(snapshot.Financials, snapshot.Profile)

	if screening.Outcome == models.OutcomeOK && screening.Verdict != nil && !screening.Verdict.IsBusinessCompliant {
		for _, reason := range screening.Verdict.NonCompliantReasons {
			h.logger.Debug().
				Str("symbol", symbol).
				Str("reason", reason).
				Msg("Business activity flagged")
		}
	}

	WriteJSON(w, http.StatusOK, AnalysisResponse{
		Symbol:    symbol,
		Profile:   snapshot.Profile,
		DebtRatio: debtRatio,
		Screening: screening,
		History:   snapshot.History,
		Metrics:   buildMetrics(snapshot),
		Record:    snapshot.Financials,
	})
}

// ExportHandler handles GET /api/analysis/export?symbol=X
func (h *AnalysisHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbol, ok := h.requestedSymbol(w, r)
	if !ok {
		return
	}

	snapshot, err := h.stockData.GetStockData(r.Context(), symbol)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("symbol", symbol).
			Msg("Stock data fetch failed for export")
		WriteError(w, http.StatusBadGateway, fetchFailedMessage)
		return
	}

	debtRatio := calc.DebtRatio(snapshot.Financials)
	screening := h.screening.Screen(snapshot.Financials, snapshot.Profile)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_analysis.csv", symbol))

	if err := h.exporter.Write(w, snapshot, debtRatio, screening); err != nil {
		h.logger.Error().
			Err(err).
			Str("symbol", symbol).
			Msg("CSV export failed")
	}
}

// requestedSymbol extracts and validates the symbol query parameter,
// writing a 400 response when it is missing or malformed.
func (h *AnalysisHandler) requestedSymbol(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))

	if err := h.validate.Var(symbol, "required,ticker"); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid stock symbol")
		return "", false
	}

	return symbol, true
}

// buildMetrics formats the financial figures for the dashboard table
func buildMetrics(snapshot *models.StockSnapshot) map[string]string {
	profile := snapshot.Profile
	record := snapshot.Financials

	return map[string]string{
		"market_cap":               calc.FormatCurrency(profile.MarketCap),
		"total_cash":               calc.FormatCurrency(profile.TotalCash),
		"short_term_investments":   calc.FormatCurrency(profile.ShortTermInvestments),
		"long_term_investments":    calc.FormatCurrency(profile.LongTermInvestments),
		"net_receivables":          calc.FormatCurrency(profile.NetReceivables),
		"long_term_debt":           calc.FormatCurrency(record.LongTermDebt),
		"total_assets":             calc.FormatCurrency(record.TotalAssets),
		"goodwill_and_intangibles": calc.FormatCurrency(record.GoodwillAndIntangibles),
	}
}
