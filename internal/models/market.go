// Package models defines the canonical data structures shared across Mizan.
package models

import (
	"time"
)

// PriceBar represents a single day's price data
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// FinancialRecord is the canonical normalized balance-sheet snapshot.
// Upstream providers use several historical field names for these figures;
// the market data service folds them into this one shape. A nil TotalAssets
// means the provider returned no usable balance sheet figure and the debt
// ratio cannot be computed.
type FinancialRecord struct {
	LongTermDebt           *float64 `json:"long_term_debt"`
	TotalAssets            *float64 `json:"total_assets"`
	GoodwillAndIntangibles *float64 `json:"goodwill_and_intangibles"`
}

// CompanyProfile is an immutable descriptive snapshot for a company.
// Sourced from the provider per query, never mutated by the screening engine.
type CompanyProfile struct {
	Symbol               string  `json:"symbol"`
	LongName             string  `json:"long_name"`
	Sector               string  `json:"sector"`
	Industry             string  `json:"industry"`
	BusinessSummary      string  `json:"business_summary"`
	MarketCap            float64 `json:"market_cap"`
	TotalCash            float64 `json:"total_cash"`
	ShortTermInvestments float64 `json:"short_term_investments"`
	LongTermInvestments  float64 `json:"long_term_investments"`
	NetReceivables       float64 `json:"net_receivables"`
}

// StockSnapshot holds everything fetched for a ticker in one request
type StockSnapshot struct {
	Symbol     string           `json:"symbol"`
	History    []PriceBar       `json:"history"`
	Financials *FinancialRecord `json:"financials"`
	Profile    *CompanyProfile  `json:"profile"`
	FetchedAt  time.Time        `json:"fetched_at"`
}
