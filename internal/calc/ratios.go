// Package calc provides pure financial calculation and formatting helpers.
package calc

import (
	"math"

	"github.com/ternarybob/mizan/internal/models"
)

// Round2 rounds a value to 2 decimal places for reporting
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DebtRatio computes the custom debt ratio excluding goodwill and intangibles:
// long-term debt divided by (total assets - goodwill and intangibles), as a
// percentage rounded to 2 decimal places.
//
// Returns nil when the record is absent, total assets are unknown, or the
// adjusted asset base is not positive. A missing debt figure is treated as 0.
func DebtRatio(record *models.FinancialRecord) *float64 {
	if record == nil {
		return nil
	}

	if record.TotalAssets == nil {
		return nil
	}

	debt := 0.0
	if record.LongTermDebt != nil {
		debt = *record.LongTermDebt
	}

	goodwill := 0.0
	if record.GoodwillAndIntangibles != nil {
		goodwill = *record.GoodwillAndIntangibles
	}

	adjustedAssets := *record.TotalAssets - goodwill
	if adjustedAssets <= 0 {
		return nil
	}

	ratio := Round2(debt / adjustedAssets * 100)
	return &ratio
}
