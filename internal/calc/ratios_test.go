package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/mizan/internal/models"
)

func f(v float64) *float64 {
	return &v
}

func TestDebtRatio_Normal(t *testing.T) {
	record := &models.FinancialRecord{
		LongTermDebt:           f(1_000_000),
		TotalAssets:            f(5_000_000),
		GoodwillAndIntangibles: f(0),
	}

	ratio := DebtRatio(record)
	require.NotNil(t, ratio)
	assert.Equal(t, 20.0, *ratio)
}

func TestDebtRatio_ExcludesGoodwill(t *testing.T) {
	record := &models.FinancialRecord{
		LongTermDebt:           f(1_000_000),
		TotalAssets:            f(5_000_000),
		GoodwillAndIntangibles: f(1_000_000),
	}

	ratio := DebtRatio(record)
	require.NotNil(t, ratio)
	assert.Equal(t, 25.0, *ratio)
}

func TestDebtRatio_Rounds(t *testing.T) {
	record := &models.FinancialRecord{
		LongTermDebt:           f(1),
		TotalAssets:            f(3),
		GoodwillAndIntangibles: f(0),
	}

	ratio := DebtRatio(record)
	require.NotNil(t, ratio)
	assert.Equal(t, 33.33, *ratio)
}

func TestDebtRatio_NilRecord(t *testing.T) {
	assert.Nil(t, DebtRatio(nil))
}

func TestDebtRatio_NilTotalAssets(t *testing.T) {
	record := &models.FinancialRecord{
		LongTermDebt:           f(1_000_000),
		GoodwillAndIntangibles: f(0),
	}

	assert.Nil(t, DebtRatio(record))
}

func TestDebtRatio_NilDebtTreatedAsZero(t *testing.T) {
	record := &models.FinancialRecord{
		TotalAssets:            f(5_000_000),
		GoodwillAndIntangibles: f(0),
	}

	ratio := DebtRatio(record)
	require.NotNil(t, ratio)
	assert.Equal(t, 0.0, *ratio)
}

func TestDebtRatio_NonPositiveAdjustedAssets(t *testing.T) {
	tests := []struct {
		name     string
		assets   float64
		goodwill float64
	}{
		{"zero assets", 0, 0},
		{"goodwill equals assets", 5_000_000, 5_000_000},
		{"goodwill exceeds assets", 5_000_000, 6_000_000},
		{"negative assets", -1_000_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &models.FinancialRecord{
				LongTermDebt:           f(1_000_000),
				TotalAssets:            f(tt.assets),
				GoodwillAndIntangibles: f(tt.goodwill),
			}
			assert.Nil(t, DebtRatio(record))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(33.3333))
	assert.Equal(t, 66.67, Round2(66.666))
	assert.Equal(t, 0.0, Round2(0.0))
	assert.Equal(t, -1.24, Round2(-1.239))
}
