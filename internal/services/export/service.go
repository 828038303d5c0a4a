// Package export builds the downloadable CSV for an analysis. One row per
// price bar, with balance sheet scalars and the screening verdict repeated on
// every row so the file stands alone in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ternarybob/mizan/internal/models"
)

var baseHeader = []string{
	"Date",
	"Close",
	"Long_Term_Debt",
	"Total_Assets",
	"Goodwill_And_Intangibles",
	"Debt_Ratio",
}

var screeningHeader = []string{
	"Islamic_Compliance",
	"Islamic_Debt_Ratio",
	"Islamic_Liquidity_Ratio",
	"Islamic_Receivables_Ratio",
	"Non_Compliance_Reasons",
}

// Service renders analysis snapshots as CSV
type Service struct{}

// NewService creates a CSV export service
func NewService() *Service {
	return &Service{}
}

// Write streams the CSV for a snapshot to w. The screening columns are only
// included when the engine produced a verdict; an insufficient-data outcome
// leaves the file with the base columns alone.
func (s *Service) Write(w io.Writer, snapshot *models.StockSnapshot, debtRatio *float64, screening models.ScreeningResult) error {
	if snapshot == nil {
		return fmt.Errorf("cannot export a nil snapshot")
	}

	cw := csv.NewWriter(w)

	header := baseHeader
	verdict := screening.Verdict
	if screening.Outcome == models.OutcomeOK && verdict != nil {
		header = append(append([]string{}, baseHeader...), screeningHeader...)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	scalars := []string{
		formatFloat(snapshot.Financials.LongTermDebt),
		formatFloat(snapshot.Financials.TotalAssets),
		formatFloat(snapshot.Financials.GoodwillAndIntangibles),
		formatFloat(debtRatio),
	}
	if screening.Outcome == models.OutcomeOK && verdict != nil {
		scalars = append(scalars,
			complianceLabel(verdict.IsFullyCompliant),
			strconv.FormatFloat(verdict.DebtRatio, 'f', -1, 64),
			strconv.FormatFloat(verdict.LiquidityRatio, 'f', -1, 64),
			strconv.FormatFloat(verdict.ReceivablesRatio, 'f', -1, 64),
			strings.Join(verdict.NonCompliantReasons, "; "),
		)
	}

	for _, bar := range snapshot.History {
		row := append([]string{
			bar.Date.Format("2006-01-02"),
			strconv.FormatFloat(bar.Close, 'f', -1, 64),
		}, scalars...)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatFloat renders a nullable figure, leaving the cell empty when unknown
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func complianceLabel(compliant bool) string {
	if compliant {
		return "Compliant"
	}
	return "Non-Compliant"
}
