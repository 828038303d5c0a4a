package screening

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/mizan/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(arbor.NewLogger())
	require.NoError(t, err)
	return svc
}

func f(v float64) *float64 {
	return &v
}

func compliantRecord() *models.FinancialRecord {
	return &models.FinancialRecord{
		LongTermDebt:           f(1_000_000),
		TotalAssets:            f(5_000_000),
		GoodwillAndIntangibles: f(0),
	}
}

func compliantProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		Symbol:               "TECH",
		LongName:             "Quantum Devices Corp",
		Sector:               "Technology",
		Industry:             "Software - Application",
		BusinessSummary:      "Develops productivity software for enterprises.",
		MarketCap:            10_000_000_000,
		TotalCash:            500_000_000,
		ShortTermInvestments: 0,
		LongTermInvestments:  0,
		NetReceivables:       800_000_000,
	}
}

func TestScreen_CompliantCompany(t *testing.T) {
	svc := newTestService(t)

	result := svc.Screen(compliantRecord(), compliantProfile())

	require.Equal(t, models.OutcomeOK, result.Outcome)
	verdict := result.Verdict
	require.NotNil(t, verdict)

	assert.Equal(t, 20.0, verdict.DebtRatio)
	assert.Equal(t, 5.0, verdict.LiquidityRatio)
	assert.Equal(t, 8.0, verdict.ReceivablesRatio)

	assert.True(t, verdict.IsDebtCompliant)
	assert.True(t, verdict.IsLiquidityCompliant)
	assert.True(t, verdict.IsReceivablesCompliant)
	assert.True(t, verdict.IsBusinessCompliant)
	assert.True(t, verdict.IsFullyCompliant)
	assert.Empty(t, verdict.NonCompliantReasons)
}

func TestScreen_NilInputs(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, models.OutcomeInsufficientData, svc.Screen(nil, nil).Outcome)
	assert.Equal(t, models.OutcomeInsufficientData, svc.Screen(compliantRecord(), nil).Outcome)
	assert.Equal(t, models.OutcomeInsufficientData, svc.Screen(nil, compliantProfile()).Outcome)
}

func TestScreen_ZeroMarketCapAborts(t *testing.T) {
	svc := newTestService(t)

	profile := compliantProfile()
	profile.MarketCap = 0

	result := svc.Screen(compliantRecord(), profile)
	assert.Equal(t, models.OutcomeInsufficientData, result.Outcome)
	assert.Nil(t, result.Verdict)
}

func TestScreen_NegativeMarketCapAborts(t *testing.T) {
	svc := newTestService(t)

	profile := compliantProfile()
	profile.MarketCap = -1

	result := svc.Screen(compliantRecord(), profile)
	assert.Equal(t, models.OutcomeInsufficientData, result.Outcome)
}

func TestScreen_UndefinedDebtRatioAborts(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name   string
		record *models.FinancialRecord
	}{
		{"nil total assets", &models.FinancialRecord{LongTermDebt: f(1_000_000)}},
		{"goodwill swallows assets", &models.FinancialRecord{
			LongTermDebt:           f(1_000_000),
			TotalAssets:            f(5_000_000),
			GoodwillAndIntangibles: f(5_000_000),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Screen(tt.record, compliantProfile())
			assert.Equal(t, models.OutcomeInsufficientData, result.Outcome)
		})
	}
}

func TestScreen_ThresholdBoundary(t *testing.T) {
	svc := newTestService(t)

	// Exactly 33% debt ratio: 33 is not < 33, so non-compliant
	record := &models.FinancialRecord{
		LongTermDebt:           f(33),
		TotalAssets:            f(100),
		GoodwillAndIntangibles: f(0),
	}

	result := svc.Screen(record, compliantProfile())
	require.Equal(t, models.OutcomeOK, result.Outcome)
	assert.Equal(t, 33.0, result.Verdict.DebtRatio)
	assert.False(t, result.Verdict.IsDebtCompliant)
	assert.False(t, result.Verdict.IsFullyCompliant)

	// Just under the threshold is compliant
	record.LongTermDebt = f(32.999)
	result = svc.Screen(record, compliantProfile())
	require.Equal(t, models.OutcomeOK, result.Outcome)
	assert.True(t, result.Verdict.IsDebtCompliant)
}

func TestScreen_ThresholdUsesUnroundedValue(t *testing.T) {
	svc := newTestService(t)

	// 33.004/100 reports as 33.0 after rounding but the unrounded value is
	// over the threshold
	record := &models.FinancialRecord{
		LongTermDebt:           f(33.004),
		TotalAssets:            f(100),
		GoodwillAndIntangibles: f(0),
	}

	result := svc.Screen(record, compliantProfile())
	require.Equal(t, models.OutcomeOK, result.Outcome)
	assert.Equal(t, 33.0, result.Verdict.DebtRatio)
	assert.False(t, result.Verdict.IsDebtCompliant)
}

func TestScreen_NonCompliantRatios(t *testing.T) {
	svc := newTestService(t)

	record := &models.FinancialRecord{
		LongTermDebt:           f(2_000_000), // 40% of adjusted assets
		TotalAssets:            f(5_000_000),
		GoodwillAndIntangibles: f(0),
	}
	profile := compliantProfile()
	profile.TotalCash = 4_000_000_000 // 40% of market cap
	profile.NetReceivables = 4_000_000_000

	result := svc.Screen(record, profile)
	require.Equal(t, models.OutcomeOK, result.Outcome)

	verdict := result.Verdict
	assert.Equal(t, 40.0, verdict.DebtRatio)
	assert.False(t, verdict.IsDebtCompliant)
	assert.False(t, verdict.IsLiquidityCompliant)
	assert.False(t, verdict.IsReceivablesCompliant)
	assert.True(t, verdict.IsBusinessCompliant)
	assert.False(t, verdict.IsFullyCompliant)
}

func TestScreen_FinancialServicesCompany(t *testing.T) {
	svc := newTestService(t)

	profile := &models.CompanyProfile{
		Symbol:          "BANK",
		LongName:        "Big Bank Corp",
		Sector:          "Financial Services",
		Industry:        "Commercial Banking",
		BusinessSummary: "Bank that provides financial services and lending.",
		MarketCap:       10_000_000_000,
	}

	result := svc.Screen(compliantRecord(), profile)
	require.Equal(t, models.OutcomeOK, result.Outcome)

	verdict := result.Verdict
	assert.False(t, verdict.IsBusinessCompliant)
	assert.False(t, verdict.IsFullyCompliant)
	require.NotEmpty(t, verdict.NonCompliantReasons)

	var mentionsFinancialServices, mentionsInterestBased bool
	for _, reason := range verdict.NonCompliantReasons {
		if strings.Contains(reason, "interest-based financial services") {
			mentionsInterestBased = true
		} else if strings.Contains(reason, "financial services") {
			mentionsFinancialServices = true
		}
	}
	assert.True(t, mentionsFinancialServices, "expected a financial services reason, got %v", verdict.NonCompliantReasons)
	assert.True(t, mentionsInterestBased, "expected the interest-based reason, got %v", verdict.NonCompliantReasons)

	// The fixed financial-institution reason comes last
	assert.Equal(t, interestBasedReason, verdict.NonCompliantReasons[len(verdict.NonCompliantReasons)-1])
}

func TestScreen_AlcoholCompany(t *testing.T) {
	svc := newTestService(t)

	profile := &models.CompanyProfile{
		LongName:        "Golden Hops Brewing",
		Sector:          "Consumer Defensive",
		Industry:        "Beverages - Brewers",
		BusinessSummary: "Produces and distributes alcoholic beverages.",
		MarketCap:       5_000_000_000,
	}

	result := svc.Screen(compliantRecord(), profile)
	require.Equal(t, models.OutcomeOK, result.Outcome)

	verdict := result.Verdict
	assert.False(t, verdict.IsBusinessCompliant)
	require.NotEmpty(t, verdict.NonCompliantReasons)

	// Exact industry match is evaluated first
	assert.Equal(t, "Company is in the Beverages - Brewers industry", verdict.NonCompliantReasons[0])
}

func TestScreen_ReasonDeduplication(t *testing.T) {
	svc := newTestService(t)

	// Name, industry and summary all trigger the gambling category; each
	// phrasing appears once, not once per keyword or per extra match.
	profile := &models.CompanyProfile{
		LongName:        "Lucky Casino Gambling Group",
		Sector:          "Consumer Cyclical",
		Industry:        "Gambling",
		BusinessSummary: "Operates casino resorts and gambling venues with betting floors.",
		MarketCap:       2_000_000_000,
	}

	result := svc.Screen(compliantRecord(), profile)
	require.Equal(t, models.OutcomeOK, result.Outcome)

	verdict := result.Verdict
	assert.False(t, verdict.IsBusinessCompliant)

	counts := make(map[string]int)
	for _, reason := range verdict.NonCompliantReasons {
		counts[reason]++
	}
	for reason, count := range counts {
		assert.Equal(t, 1, count, "reason appears more than once: %s", reason)
	}

	assert.Contains(t, verdict.NonCompliantReasons, "Company name suggests involvement in gambling")
	assert.Contains(t, verdict.NonCompliantReasons, "Company operates in the gambling industry")
	assert.Contains(t, verdict.NonCompliantReasons, "Business summary indicates gambling-related activities")
}

func TestScreen_Idempotent(t *testing.T) {
	svc := newTestService(t)

	record := compliantRecord()
	profile := &models.CompanyProfile{
		LongName:        "Big Bank Corp",
		Sector:          "Financial Services",
		Industry:        "Banks - Regional",
		BusinessSummary: "Retail banking and insurance services.",
		MarketCap:       10_000_000_000,
	}

	first := svc.Screen(record, profile)
	second := svc.Screen(record, profile)

	assert.Equal(t, first, second)
}

func TestFinancialRatios_ZeroMarketCapDefaultsBenign(t *testing.T) {
	// Direct ratio calculation with no market cap: liquidity and
	// receivables default to 0 rather than failing.
	profile := compliantProfile()
	profile.MarketCap = 0
	profile.TotalCash = 500_000_000
	profile.NetReceivables = 800_000_000

	r := financialRatios(compliantRecord(), profile)

	assert.True(t, r.debtDefined)
	assert.Equal(t, 0.0, r.liquidity)
	assert.Equal(t, 0.0, r.receivables)
}

func TestFinancialRatios_Values(t *testing.T) {
	r := financialRatios(compliantRecord(), compliantProfile())

	assert.True(t, r.debtDefined)
	assert.Equal(t, 20.0, r.debt)
	assert.Equal(t, 5.0, r.liquidity)
	assert.Equal(t, 8.0, r.receivables)
}
