package textgen

import (
	"context"
	"fmt"
	"strings"
)

// TemplateGenerator renders a fixed-form English summary with no external
// calls. It backs the Gemini generator when the API is unavailable and is
// the default when no API key is configured.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator { return &TemplateGenerator{} }

func (t *TemplateGenerator) Provider() string { return "template" }

func (t *TemplateGenerator) GenerateSummary(_ context.Context, stats *Stats, _ string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "In %s you recorded %d transactions. ", stats.Month, stats.TransactionCount)
	fmt.Fprintf(&b, "Income was %s %s and spending was %s %s, ",
		stats.Income, stats.BaseCurrency, stats.Expense, stats.BaseCurrency)
	if stats.Net.IsNegative() {
		fmt.Fprintf(&b, "so you spent %s %s more than you earned.",
			stats.Net.Neg(), stats.BaseCurrency)
	} else {
		fmt.Fprintf(&b, "leaving you %s %s ahead.", stats.Net, stats.BaseCurrency)
	}
	if len(stats.TopCategories) > 0 {
		top := stats.TopCategories[0]
		fmt.Fprintf(&b, " Your biggest spending category was %s at %s %s.",
			top.Label, top.Total, stats.BaseCurrency)
	}
	if len(stats.TopMerchants) > 0 {
		top := stats.TopMerchants[0]
		fmt.Fprintf(&b, " You spent the most at %s (%s %s).",
			top.Label, top.Total, stats.BaseCurrency)
	}
	return b.String(), nil
}
