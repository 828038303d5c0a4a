package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/mizan/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func sampleSnapshot() *models.StockSnapshot {
	return &models.StockSnapshot{
		Symbol: "AAPL",
		History: []models.PriceBar{
			{Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Close: 190.5},
			{Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), Close: 192.25},
		},
		Financials: &models.FinancialRecord{
			LongTermDebt:           floatPtr(1_000_000),
			TotalAssets:            floatPtr(5_500_000),
			GoodwillAndIntangibles: floatPtr(500_000),
		},
		Profile: &models.CompanyProfile{Symbol: "AAPL"},
	}
}

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWrite_WithScreeningVerdict(t *testing.T) {
	verdict := &models.ComplianceVerdict{
		DebtRatio:              20,
		LiquidityRatio:         5,
		ReceivablesRatio:       8,
		IsDebtCompliant:        true,
		IsLiquidityCompliant:   true,
		IsReceivablesCompliant: true,
		IsBusinessCompliant:    true,
		IsFullyCompliant:       true,
	}

	var buf bytes.Buffer
	err := NewService().Write(&buf, sampleSnapshot(), floatPtr(20.0), models.OK(verdict))
	require.NoError(t, err)

	records := parseCSV(t, &buf)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Date", "Close", "Long_Term_Debt", "Total_Assets",
		"Goodwill_And_Intangibles", "Debt_Ratio",
		"Islamic_Compliance", "Islamic_Debt_Ratio", "Islamic_Liquidity_Ratio",
		"Islamic_Receivables_Ratio", "Non_Compliance_Reasons",
	}, records[0])

	first := records[1]
	assert.Equal(t, "2025-06-02", first[0])
	assert.Equal(t, "190.5", first[1])
	assert.Equal(t, "1000000", first[2])
	assert.Equal(t, "20", first[5])
	assert.Equal(t, "Compliant", first[6])
	assert.Equal(t, "", first[10])

	// Scalars repeat on every row
	assert.Equal(t, first[2:], records[2][2:])
}

func TestWrite_NonCompliantReasonsJoined(t *testing.T) {
	verdict := &models.ComplianceVerdict{
		DebtRatio: 40,
		NonCompliantReasons: []string{
			"Company operates in the financial services industry",
			"Company operates in interest-based financial services",
		},
	}

	var buf bytes.Buffer
	err := NewService().Write(&buf, sampleSnapshot(), floatPtr(40.0), models.OK(verdict))
	require.NoError(t, err)

	records := parseCSV(t, &buf)
	assert.Equal(t,
		"Company operates in the financial services industry; Company operates in interest-based financial services",
		records[1][10])
	assert.Equal(t, "Non-Compliant", records[1][6])
}

func TestWrite_InsufficientDataOmitsScreeningColumns(t *testing.T) {
	var buf bytes.Buffer
	err := NewService().Write(&buf, sampleSnapshot(), floatPtr(20.0), models.InsufficientData())
	require.NoError(t, err)

	records := parseCSV(t, &buf)
	assert.Len(t, records[0], 6)
	assert.Equal(t, "Debt_Ratio", records[0][5])
}

func TestWrite_NullRatioLeavesCellEmpty(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.Financials.TotalAssets = nil

	var buf bytes.Buffer
	err := NewService().Write(&buf, snapshot, nil, models.InsufficientData())
	require.NoError(t, err)

	records := parseCSV(t, &buf)
	assert.Equal(t, "", records[1][3], "missing total assets")
	assert.Equal(t, "", records[1][5], "undefined debt ratio")
}

func TestWrite_NilSnapshot(t *testing.T) {
	var buf bytes.Buffer
	err := NewService().Write(&buf, nil, nil, models.InsufficientData())
	assert.Error(t, err)
}
