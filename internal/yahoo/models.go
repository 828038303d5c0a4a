package yahoo

import (
	"encoding/json"
)

// rawValue is Yahoo's wrapper around numeric fields: {"raw": 123.4, "fmt": "123.4"}.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type apiErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// chartResponse is the shape of /v8/finance/chart/{symbol}.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiErrorBody `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []quoteBlock `json:"quote"`
	} `json:"indicators"`
}

// quoteBlock holds parallel arrays aligned with the timestamp array.
// Entries are null for halted or missing sessions.
type quoteBlock struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// quoteSummaryResponse is the shape of /v10/finance/quoteSummary/{symbol}.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiErrorBody        `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	BalanceSheetHistory *struct {
		Statements []map[string]json.RawMessage `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`

	SummaryProfile *struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"summaryProfile"`

	Price *struct {
		LongName  string   `json:"longName"`
		ShortName string   `json:"shortName"`
		MarketCap rawValue `json:"marketCap"`
	} `json:"price"`

	FinancialData *struct {
		TotalCash rawValue `json:"totalCash"`
	} `json:"financialData"`
}

// numericFields flattens a balance sheet statement into field name -> value,
// keeping only entries that carry a raw numeric payload.
func numericFields(statement map[string]json.RawMessage) map[string]float64 {
	fields := make(map[string]float64, len(statement))
	for name, raw := range statement {
		var v rawValue
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if v.Raw != nil {
			fields[name] = *v.Raw
		}
	}
	return fields
}
