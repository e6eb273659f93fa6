package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/insight"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
	"github.com/satang-labs/ledger-server/internal/textgen"
)

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) GenerateSummary(ctx context.Context, stats *textgen.Stats, language string) (string, error) {
	args := m.Called(ctx, stats, language)
	return args.String(0), args.Error(1)
}

func (m *mockGenerator) Provider() string { return "mock" }

type insightFixture struct {
	svc      *InsightService
	users    *mockUserTable
	txs      *mockTransactionTable
	insights *mockInsightTable
	gen      *mockGenerator
	ops      *fakeProcessor
}

func newInsightFixture(t *testing.T) *insightFixture {
	t.Helper()
	f := &insightFixture{
		users:    &mockUserTable{},
		txs:      &mockTransactionTable{},
		insights: &mockInsightTable{},
		gen:      &mockGenerator{},
	}
	f.ops, _, _ = newFakeProcessor()
	f.svc = NewInsightService(f.users, f.txs, f.insights, f.gen, f.ops)
	return f
}

func (f *insightFixture) stubMonth(ownerID uuid.UUID, income, expense string, count int64) {
	f.users.On("FindByID", mock.Anything, ownerID).
		Return(&user.User{ID: ownerID, BaseCurrency: "THB"}, nil)
	f.txs.On("SumBaseAmount", mock.Anything, mock.MatchedBy(func(filter *transaction.SumFilter) bool {
		return filter.Type == transaction.TypeIncome
	})).Return(decimal.RequireFromString(income), nil)
	f.txs.On("SumBaseAmount", mock.Anything, mock.MatchedBy(func(filter *transaction.SumFilter) bool {
		return filter.Type == transaction.TypeExpense
	})).Return(decimal.RequireFromString(expense), nil)
	f.txs.On("CountInRange", mock.Anything, ownerID, mock.Anything, mock.Anything).
		Return(count, nil)
	f.txs.On("TopCategories", mock.Anything, ownerID, mock.Anything, mock.Anything, 5).
		Return([]transaction.GroupTotal{{Label: "Groceries", Total: decimal.RequireFromString("4200.00")}}, nil)
	f.txs.On("TopMerchants", mock.Anything, ownerID, mock.Anything, mock.Anything, 5).
		Return([]transaction.GroupTotal{{Label: "MegaMart", Total: decimal.RequireFromString("1800.00")}}, nil)
}

func TestBuildMonthlyStats(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	f.stubMonth(ownerID, "52000.00", "31000.00", 47)

	stats, err := f.svc.BuildMonthlyStats(context.Background(), ownerID, "2025-07")

	assert.NoError(t, err)
	assert.Equal(t, "2025-07", stats.Month)
	assert.Equal(t, "THB", stats.BaseCurrency)
	assert.True(t, stats.Net.Equal(decimal.RequireFromString("21000.00")))
	assert.Equal(t, int64(47), stats.TransactionCount)
	assert.Equal(t, "Groceries", stats.TopCategories[0].Label)
	assert.Equal(t, "MegaMart", stats.TopMerchants[0].Label)
}

func TestBuildMonthlyStats_WindowIsCalendarMonth(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	f.stubMonth(ownerID, "0", "0", 0)

	_, err := f.svc.BuildMonthlyStats(context.Background(), ownerID, "2025-07")

	assert.NoError(t, err)
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	f.txs.AssertCalled(t, "CountInRange", mock.Anything, ownerID, from, to)
}

func TestGenerateMonthlySummary_ReturnsCachedUnlessForced(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())

	cached := &insight.Insight{ID: uuid.Must(uuid.NewV4()), Content: "cached text"}
	f.insights.On("Find", mock.Anything, ownerID, "2025-07", insight.KindMonthlySummary, "en").
		Return(cached, nil)

	got, err := f.svc.GenerateMonthlySummary(context.Background(), ownerID, "2025-07", "en", false)

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Empty(t, f.ops.processed, "cache hit writes nothing")
	f.users.AssertNotCalled(t, "FindByID")
}

func TestGenerateMonthlySummary_ForceRegenerates(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	f.stubMonth(ownerID, "52000.00", "31000.00", 47)

	f.gen.On("GenerateSummary", mock.Anything, mock.Anything, "en").
		Return("a fresh take on July", nil)

	got, err := f.svc.GenerateMonthlySummary(context.Background(), ownerID, "2025-07", "en", true)

	assert.NoError(t, err)
	assert.Equal(t, "a fresh take on July", got.Content)
	assert.Equal(t, "mock", got.Meta["provider"])
	f.insights.AssertNotCalled(t, "Find")
}

func TestGenerateMonthlySummary_FallsBackToTemplate(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	f.stubMonth(ownerID, "52000.00", "31000.00", 47)

	f.insights.On("Find", mock.Anything, ownerID, "2025-07", insight.KindMonthlySummary, "en").
		Return(nil, db.ErrNotFound)
	f.gen.On("GenerateSummary", mock.Anything, mock.Anything, "en").
		Return("", errors.New("quota exceeded"))

	got, err := f.svc.GenerateMonthlySummary(context.Background(), ownerID, "2025-07", "en", false)

	assert.NoError(t, err, "generator outage never fails the request")
	assert.Equal(t, "template", got.Meta["provider"])
	assert.Contains(t, got.Content, "2025-07")
	assert.Contains(t, got.Content, "Groceries")
}

func TestGenerateMonthlySummary_MetaMatchesFigures(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	f.stubMonth(ownerID, "52000.00", "31000.00", 47)

	f.gen.On("GenerateSummary", mock.Anything, mock.Anything, "th").
		Return("summary", nil)

	got, err := f.svc.GenerateMonthlySummary(context.Background(), ownerID, "2025-07", "th", true)

	assert.NoError(t, err)
	assert.Equal(t, "th", got.Language)
	assert.Equal(t, "52000", got.Meta["income"])
	assert.Equal(t, "31000", got.Meta["expense"])
	assert.Equal(t, "21000", got.Meta["net"])
	assert.Equal(t, int64(47), got.Meta["transaction_count"])
}

func TestGenerateMonthlySummary_DefaultsLanguage(t *testing.T) {
	f := newInsightFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	f.stubMonth(ownerID, "0", "0", 0)

	f.insights.On("Find", mock.Anything, ownerID, "2025-07", insight.KindMonthlySummary, "en").
		Return(nil, db.ErrNotFound)
	f.gen.On("GenerateSummary", mock.Anything, mock.Anything, "en").
		Return("summary", nil)

	got, err := f.svc.GenerateMonthlySummary(context.Background(), ownerID, "2025-07", "", false)

	assert.NoError(t, err)
	assert.Equal(t, "en", got.Language)
}
