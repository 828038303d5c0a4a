package screening

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/mizan/internal/calc"
	"github.com/ternarybob/mizan/internal/models"
)

// complianceThreshold is the strict upper bound for each financial ratio,
// in percent. Compliance is evaluated on the unrounded value.
const complianceThreshold = 33.0

// interestBasedReason is the fixed reason appended by the financial
// institution check.
const interestBasedReason = "Company operates in interest-based financial services"

// Service evaluates companies against the compliance rules.
// The taxonomy is read-only after construction, so a single instance is
// safe for concurrent use and evaluations are idempotent.
type Service struct {
	taxonomy *Taxonomy
	logger   arbor.ILogger
}

// NewService creates a screening service with the embedded rule taxonomy
func NewService(logger arbor.ILogger) (*Service, error) {
	taxonomy, err := LoadTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("failed to load screening taxonomy: %w", err)
	}

	return &Service{
		taxonomy: taxonomy,
		logger:   logger,
	}, nil
}

// Screen evaluates a financial record and company profile and produces a
// verdict. Missing inputs, a non-positive market cap, or an undefined debt
// ratio yield an insufficient-data result. Any internal fault is recovered
// here and also reported as insufficient data; faults never cross this
// boundary.
func (s *Service) Screen(record *models.FinancialRecord, profile *models.CompanyProfile) (result models.ScreeningResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Screening evaluation failed")
			result = models.InsufficientData()
		}
	}()

	if record == nil || profile == nil {
		return models.InsufficientData()
	}

	// Market cap is the primary guard: without it the evaluation aborts.
	if profile.MarketCap <= 0 {
		return models.InsufficientData()
	}

	ratios := financialRatios(record, profile)
	if !ratios.debtDefined {
		return models.InsufficientData()
	}

	isBusinessCompliant, reasons := s.checkBusinessActivities(profile)

	verdict := &models.ComplianceVerdict{
		DebtRatio:        calc.Round2(ratios.debt),
		LiquidityRatio:   calc.Round2(ratios.liquidity),
		ReceivablesRatio: calc.Round2(ratios.receivables),

		IsDebtCompliant:        ratios.debt < complianceThreshold,
		IsLiquidityCompliant:   ratios.liquidity < complianceThreshold,
		IsReceivablesCompliant: ratios.receivables < complianceThreshold,
		IsBusinessCompliant:    isBusinessCompliant,

		NonCompliantReasons: reasons,
	}

	verdict.IsFullyCompliant = verdict.IsDebtCompliant &&
		verdict.IsLiquidityCompliant &&
		verdict.IsReceivablesCompliant &&
		verdict.IsBusinessCompliant

	return models.OK(verdict)
}

// rawRatios holds unrounded ratio values. Rounding happens only at the
// reporting edge; threshold comparison uses these values directly.
type rawRatios struct {
	debt        float64
	debtDefined bool
	liquidity   float64
	receivables float64
}

// financialRatios computes the three screening ratios.
//
// The debt ratio is undefined when total assets are unknown or the adjusted
// asset base is not positive; callers abort the evaluation in that case. For
// liquidity and receivables a non-positive market cap defaults the ratios to
// 0 (compliant) instead. The caller's market-cap guard makes the benign
// default unreachable in the full evaluation; it is kept for direct use so
// partial ratio calculations never divide by zero.
func financialRatios(record *models.FinancialRecord, profile *models.CompanyProfile) rawRatios {
	var r rawRatios

	if record.TotalAssets != nil {
		debt := 0.0
		if record.LongTermDebt != nil {
			debt = *record.LongTermDebt
		}
		goodwill := 0.0
		if record.GoodwillAndIntangibles != nil {
			goodwill = *record.GoodwillAndIntangibles
		}

		if adjusted := *record.TotalAssets - goodwill; adjusted > 0 {
			r.debt = debt / adjusted * 100
			r.debtDefined = true
		}
	}

	if profile.MarketCap > 0 {
		cashAndInvestments := profile.TotalCash + profile.ShortTermInvestments + profile.LongTermInvestments
		r.liquidity = cashAndInvestments / profile.MarketCap * 100
		r.receivables = profile.NetReceivables / profile.MarketCap * 100
	}

	return r
}

// reasonCollector accumulates non-compliance reasons in evaluation order,
// deduplicated by exact string.
type reasonCollector struct {
	reasons []string
	seen    map[string]struct{}
}

func newReasonCollector() *reasonCollector {
	return &reasonCollector{seen: make(map[string]struct{})}
}

func (c *reasonCollector) add(reason string) {
	if _, ok := c.seen[reason]; ok {
		return
	}
	c.seen[reason] = struct{}{}
	c.reasons = append(c.reasons, reason)
}

// textField pairs a profile field's lowercase text with the reason phrasing
// used when a category keyword matches in that field.
type textField struct {
	text   string
	phrase string
}

// checkBusinessActivities runs the taxonomy match across the profile's
// free-text fields. Returns whether the company is business-compliant and
// the ordered list of reasons when it is not.
func (s *Service) checkBusinessActivities(profile *models.CompanyProfile) (bool, []string) {
	name := strings.ToLower(profile.LongName)
	industry := strings.ToLower(profile.Industry)
	summary := strings.ToLower(profile.BusinessSummary)
	sector := strings.ToLower(profile.Sector)

	collector := newReasonCollector()

	// Exact industry classifications first
	for _, disallowed := range s.taxonomy.DisallowedIndustries {
		if industry == strings.ToLower(disallowed) {
			collector.add(fmt.Sprintf("Company is in the %s industry", disallowed))
		}
	}

	// One generic pass over the category table; the phrasing depends on
	// which field matched, and each (category, phrasing) pair is appended
	// at most once.
	fields := []textField{
		{text: name, phrase: "Company name suggests involvement in %s"},
		{text: industry, phrase: "Company operates in the %s industry"},
		{text: summary, phrase: "Business summary indicates %s-related activities"},
		{text: sector, phrase: "Company sector involves %s"},
	}

	for _, category := range s.taxonomy.Categories {
		for _, field := range fields {
			if field.text == "" {
				continue
			}
			for _, keyword := range category.Keywords {
				if strings.Contains(field.text, keyword) {
					collector.add(fmt.Sprintf(field.phrase, category.Name))
					break
				}
			}
		}
	}

	// Financial institution check last: indicator phrases in the industry or
	// company name, or a financial services sector with a matching industry.
	for _, indicator := range s.taxonomy.FinancialIndicators {
		if strings.Contains(industry, indicator) ||
			strings.Contains(name, indicator) ||
			(sector == "financial services" && strings.Contains(industry, indicator)) {
			collector.add(interestBasedReason)
			break
		}
	}

	return len(collector.reasons) == 0, collector.reasons
}
