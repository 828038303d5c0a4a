// Package screening implements the Shariah compliance screening engine:
// three financial ratio thresholds plus a business-activity taxonomy match
// against free-text company metadata.
package screening

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Category maps a disallowed business activity to its trigger keywords.
// Keywords are matched case-insensitively as substrings.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is the process-wide rule table for the business-activity check.
// Loaded once at service construction and never mutated; category order is
// the evaluation (and reason output) order.
type Taxonomy struct {
	Categories []Category `yaml:"categories"`

	// DisallowedIndustries are exact (case-insensitive) industry
	// classifications that are non-compliant on their own.
	DisallowedIndustries []string `yaml:"disallowed_industries"`

	// FinancialIndicators are phrases marking banking, insurance and asset
	// management businesses for the interest-based services check.
	FinancialIndicators []string `yaml:"financial_indicators"`
}

// LoadTaxonomy parses the embedded rule table
func LoadTaxonomy() (*Taxonomy, error) {
	return parseTaxonomy(taxonomyYAML)
}

func parseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}

	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	// Matching is lowercase throughout
	for i, cat := range t.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("taxonomy category %d has no name", i)
		}
		if len(cat.Keywords) == 0 {
			return nil, fmt.Errorf("taxonomy category %q has no keywords", cat.Name)
		}
		for j, kw := range cat.Keywords {
			t.Categories[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	for i, ind := range t.FinancialIndicators {
		t.FinancialIndicators[i] = strings.ToLower(ind)
	}

	return &t, nil
}
