package marketdata

import (
	"github.com/ternarybob/mizan/internal/models"
)

// Upstream balance sheets have gone through several naming revisions for the
// same figures. Each list is ordered by preference; the first field present
// in the statement wins.
var (
	longTermDebtFields = []string{
		"longTermDebt",
		"longTermDebtNoncurrent",
		"longTermDebtAndCapitalLeaseObligation",
		"totalDebt",
	}

	totalAssetsFields = []string{
		"totalAssets",
	}

	goodwillFields = []string{
		"goodWill",
		"goodwill",
	}

	intangibleFields = []string{
		"intangibleAssets",
		"otherIntangibleAssets",
		"intangiblesNet",
	}

	// Some revisions report goodwill and intangibles as one combined figure
	combinedGoodwillFields = []string{
		"goodwillAndOtherIntangibleAssets",
	}
)

// normalizeFinancials folds a raw balance sheet field map into the canonical
// FinancialRecord. Debt, goodwill and intangibles default to 0 when no
// variant matches; total assets stay nil so the debt ratio reports as
// unavailable instead of silently computing from a zero asset base.
func normalizeFinancials(statement map[string]float64) *models.FinancialRecord {
	record := &models.FinancialRecord{}

	debt := firstMatch(statement, longTermDebtFields)
	if debt == nil {
		zero := 0.0
		debt = &zero
	}
	record.LongTermDebt = debt

	record.TotalAssets = firstMatch(statement, totalAssetsFields)

	// Combined figure takes precedence; otherwise goodwill and intangibles
	// are summed from their separate fields.
	if combined := firstMatch(statement, combinedGoodwillFields); combined != nil {
		record.GoodwillAndIntangibles = combined
	} else {
		total := 0.0
		if goodwill := firstMatch(statement, goodwillFields); goodwill != nil {
			total += *goodwill
		}
		if intangibles := firstMatch(statement, intangibleFields); intangibles != nil {
			total += *intangibles
		}
		record.GoodwillAndIntangibles = &total
	}

	return record
}

func firstMatch(statement map[string]float64, fields []string) *float64 {
	for _, field := range fields {
		if value, ok := statement[field]; ok {
			v := value
			return &v
		}
	}
	return nil
}
