package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/insight"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
	"github.com/satang-labs/ledger-server/internal/textgen"
)

const topGroupLimit = 5

// InsightService computes monthly statistics and turns them into persisted
// prose summaries. The external generator is optional; the template
// generator always works, so summary generation never fails on an upstream
// outage.
type InsightService struct {
	users        user.IUserTable
	transactions transaction.ITransactionTable
	insights     insight.IInsightTable
	generator    textgen.SummaryGenerator
	template     *textgen.TemplateGenerator
	ops          Processor
}

func NewInsightService(
	users user.IUserTable,
	transactions transaction.ITransactionTable,
	insights insight.IInsightTable,
	generator textgen.SummaryGenerator,
	ops Processor,
) *InsightService {
	return &InsightService{
		users:        users,
		transactions: transactions,
		insights:     insights,
		generator:    generator,
		template:     textgen.NewTemplateGenerator(),
		ops:          ops,
	}
}

// BuildMonthlyStats aggregates one owner's month from the base-amount
// snapshots. Transfer legs are internal movements and excluded from income
// and expense.
func (s *InsightService) BuildMonthlyStats(ctx context.Context, ownerID uuid.UUID, month string) (*textgen.Stats, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	from, to, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	income, err := s.transactions.SumBaseAmount(ctx, &transaction.SumFilter{
		OwnerID: ownerID, Type: transaction.TypeIncome, From: from, To: to,
	})
	if err != nil {
		return nil, err
	}
	expense, err := s.transactions.SumBaseAmount(ctx, &transaction.SumFilter{
		OwnerID: ownerID, Type: transaction.TypeExpense, From: from, To: to,
	})
	if err != nil {
		return nil, err
	}
	count, err := s.transactions.CountInRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	topCategories, err := s.transactions.TopCategories(ctx, ownerID, from, to, topGroupLimit)
	if err != nil {
		return nil, err
	}
	topMerchants, err := s.transactions.TopMerchants(ctx, ownerID, from, to, topGroupLimit)
	if err != nil {
		return nil, err
	}

	return &textgen.Stats{
		Month:            month,
		BaseCurrency:     owner.BaseCurrency,
		Income:           income,
		Expense:          expense,
		Net:              income.Sub(expense),
		TransactionCount: count,
		TopCategories:    toTextgenGroups(topCategories),
		TopMerchants:     toTextgenGroups(topMerchants),
	}, nil
}

// GenerateMonthlySummary builds the month's stats, renders prose, and
// upserts the result so a rerun for the same month replaces the previous
// text. When force is false an existing summary is returned as-is.
func (s *InsightService) GenerateMonthlySummary(ctx context.Context, ownerID uuid.UUID, month, language string, force bool) (*insight.Insight, error) {
	if language == "" {
		language = "en"
	}

	if !force {
		existing, err := s.insights.Find(ctx, ownerID, month, insight.KindMonthlySummary, language)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
	}

	stats, err := s.BuildMonthlyStats(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	content, provider := s.render(ctx, stats, language)

	act := &actions.UpsertInsight{
		Upsert: insight.InsightUpsert{
			OwnerID:  ownerID,
			Month:    month,
			Kind:     insight.KindMonthlySummary,
			Language: language,
			Content:  content,
			Meta:     statsMeta(stats, provider),
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		return nil, err
	}
	return act.Result, nil
}

func (s *InsightService) render(ctx context.Context, stats *textgen.Stats, language string) (string, string) {
	if s.generator != nil {
		content, err := s.generator.GenerateSummary(ctx, stats, language)
		if err == nil {
			return content, s.generator.Provider()
		}
		logrus.WithError(err).WithField("provider", s.generator.Provider()).
			Warn("summary generator failed; falling back to template")
	}
	content, _ := s.template.GenerateSummary(ctx, stats, language)
	return content, s.template.Provider()
}

func toTextgenGroups(groups []transaction.GroupTotal) []textgen.GroupTotal {
	out := make([]textgen.GroupTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, textgen.GroupTotal{Label: g.Label, Total: g.Total})
	}
	return out
}

// statsMeta keeps the figures the prose was derived from next to the prose
// itself, so the numbers shown with a summary always match its text.
func statsMeta(stats *textgen.Stats, provider string) map[string]any {
	categories := make([]map[string]any, 0, len(stats.TopCategories))
	for _, c := range stats.TopCategories {
		categories = append(categories, map[string]any{"label": c.Label, "total": c.Total.String()})
	}
	merchants := make([]map[string]any, 0, len(stats.TopMerchants))
	for _, m := range stats.TopMerchants {
		merchants = append(merchants, map[string]any{"label": m.Label, "total": m.Total.String()})
	}
	return map[string]any{
		"provider":          provider,
		"base_currency":     stats.BaseCurrency,
		"income":            stats.Income.String(),
		"expense":           stats.Expense.String(),
		"net":               stats.Net.String(),
		"transaction_count": stats.TransactionCount,
		"top_categories":    categories,
		"top_merchants":     merchants,
	}
}
