// Package textgen turns monthly ledger statistics into short prose
// summaries. The Gemini generator is optional; the template generator needs
// nothing external and is always available as a fallback.
package textgen

import (
	"context"

	"github.com/shopspring/decimal"
)

// GroupTotal is one labeled aggregation bucket.
type GroupTotal struct {
	Label string
	Total decimal.Decimal
}

// Stats is the numeric input for a monthly summary. All amounts are in the
// owner's base currency.
type Stats struct {
	Month            string
	BaseCurrency     string
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int64
	TopCategories    []GroupTotal
	TopMerchants     []GroupTotal
}

// SummaryGenerator produces a natural-language summary from stats.
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, stats *Stats, language string) (string, error)
	Provider() string
}
