package models

// ScreeningOutcome indicates whether the screening engine produced a verdict
type ScreeningOutcome string

const (
	// OutcomeOK means a verdict was produced
	OutcomeOK ScreeningOutcome = "ok"

	// OutcomeInsufficientData means the inputs could not support a verdict
	// (missing record or profile, non-positive market cap, or an undefined
	// debt ratio). The UI shows a blank state, not an error.
	OutcomeInsufficientData ScreeningOutcome = "insufficient_data"
)

// ComplianceVerdict is the output of one screening evaluation.
// Constructed fresh per call and never mutated after return.
type ComplianceVerdict struct {
	DebtRatio        float64 `json:"debt_ratio"`
	LiquidityRatio   float64 `json:"liquidity_ratio"`
	ReceivablesRatio float64 `json:"receivables_ratio"`

	IsDebtCompliant        bool `json:"is_debt_compliant"`
	IsLiquidityCompliant   bool `json:"is_liquidity_compliant"`
	IsReceivablesCompliant bool `json:"is_receivables_compliant"`
	IsBusinessCompliant    bool `json:"is_business_compliant"`
	IsFullyCompliant       bool `json:"is_fully_compliant"`

	// NonCompliantReasons is ordered by evaluation order and deduplicated
	// by exact string.
	NonCompliantReasons []string `json:"non_compliant_reasons"`
}

// ScreeningResult wraps a verdict with an explicit outcome so the fail-soft
// boundary is a testable contract rather than an implicit nil.
type ScreeningResult struct {
	Outcome ScreeningOutcome   `json:"outcome"`
	Verdict *ComplianceVerdict `json:"verdict,omitempty"`
}

// InsufficientData returns a result with no verdict
func InsufficientData() ScreeningResult {
	return ScreeningResult{Outcome: OutcomeInsufficientData}
}

// OK wraps a verdict in a successful result
func OK(verdict *ComplianceVerdict) ScreeningResult {
	return ScreeningResult{Outcome: OutcomeOK, Verdict: verdict}
}
