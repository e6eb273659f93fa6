package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/storage/budget"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/currency"
	"github.com/satang-labs/ledger-server/internal/storage/fxrate"
	"github.com/satang-labs/ledger-server/internal/storage/insight"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// -- reader mocks --

type mockUserTable struct{ mock.Mock }

func (m *mockUserTable) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type mockWalletTable struct{ mock.Mock }

func (m *mockWalletTable) FindByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*wallet.Wallet)
	return w, args.Error(1)
}

func (m *mockWalletTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID)
	ws, _ := args.Get(0).([]*wallet.Wallet)
	return ws, args.Error(1)
}

type mockCategoryTable struct{ mock.Mock }

func (m *mockCategoryTable) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockCategoryTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	args := m.Called(ctx, ownerID)
	cs, _ := args.Get(0).([]*category.Category)
	return cs, args.Error(1)
}

type mockCurrencyTable struct{ mock.Mock }

func (m *mockCurrencyTable) FindByCode(ctx context.Context, code string) (*currency.Currency, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(*currency.Currency)
	return c, args.Error(1)
}

func (m *mockCurrencyTable) List(ctx context.Context) ([]*currency.Currency, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*currency.Currency)
	return cs, args.Error(1)
}

type mockFxRateTable struct{ mock.Mock }

func (m *mockFxRateTable) Find(ctx context.Context, on time.Time, base, quote string) (*fxrate.Rate, error) {
	args := m.Called(ctx, on, base, quote)
	r, _ := args.Get(0).(*fxrate.Rate)
	return r, args.Error(1)
}

type mockTransactionTable struct{ mock.Mock }

func (m *mockTransactionTable) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *transaction.Filter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	ts, _ := args.Get(0).([]*transaction.Transaction)
	return ts, args.Error(1)
}

func (m *mockTransactionTable) SumBaseAmount(ctx context.Context, filter *transaction.SumFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func (m *mockTransactionTable) CountInRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, from, to)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *mockTransactionTable) TopCategories(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]transaction.GroupTotal, error) {
	args := m.Called(ctx, ownerID, from, to, limit)
	gs, _ := args.Get(0).([]transaction.GroupTotal)
	return gs, args.Error(1)
}

func (m *mockTransactionTable) TopMerchants(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]transaction.GroupTotal, error) {
	args := m.Called(ctx, ownerID, from, to, limit)
	gs, _ := args.Get(0).([]transaction.GroupTotal)
	return gs, args.Error(1)
}

func (m *mockTransactionTable) FindLinkByID(ctx context.Context, id uuid.UUID) (*transaction.TransferLink, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*transaction.TransferLink)
	return l, args.Error(1)
}

func (m *mockTransactionTable) FindLinkByTxID(ctx context.Context, txID uuid.UUID) (*transaction.TransferLink, error) {
	args := m.Called(ctx, txID)
	l, _ := args.Get(0).(*transaction.TransferLink)
	return l, args.Error(1)
}

type mockBudgetTable struct{ mock.Mock }

func (m *mockBudgetTable) ListForMonth(ctx context.Context, ownerID uuid.UUID, month string) ([]*budget.Budget, error) {
	args := m.Called(ctx, ownerID, month)
	bs, _ := args.Get(0).([]*budget.Budget)
	return bs, args.Error(1)
}

type mockRecurringTable struct{ mock.Mock }

func (m *mockRecurringTable) ListDue(ctx context.Context, now time.Time) ([]*recurring.Rule, error) {
	args := m.Called(ctx, now)
	rs, _ := args.Get(0).([]*recurring.Rule)
	return rs, args.Error(1)
}

func (m *mockRecurringTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*recurring.Rule, error) {
	args := m.Called(ctx, ownerID)
	rs, _ := args.Get(0).([]*recurring.Rule)
	return rs, args.Error(1)
}

type mockInsightTable struct{ mock.Mock }

func (m *mockInsightTable) Find(ctx context.Context, ownerID uuid.UUID, month, kind, language string) (*insight.Insight, error) {
	args := m.Called(ctx, ownerID, month, kind, language)
	i, _ := args.Get(0).(*insight.Insight)
	return i, args.Error(1)
}

// -- in-memory writers --
//
// The fake processor performs each action against a Writer assembled from
// these, so service tests exercise the real action logic without a
// database. Writer.Commit and Rollback are nil-safe, making the zero tx
// usable here.

type fakeTransactionWriter struct {
	inserted []*transaction.Transaction
	links    []*transaction.TransferLink
	deleted  []uuid.UUID

	insertErr error
	deleteN   int64
}

func (f *fakeTransactionWriter) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	t := &transaction.Transaction{
		ID:         uuid.Must(uuid.NewV4()),
		OwnerID:    create.OwnerID,
		WalletID:   create.WalletID,
		Type:       create.Type,
		OccurredAt: create.OccurredAt,
		Amount:     create.Amount,
		Currency:   create.Currency,
		FxRate:     create.FxRate,
		BaseAmount: create.BaseAmount,
		CategoryID: create.CategoryID,
		Merchant:   create.Merchant,
		Note:       create.Note,
		CreatedAt:  time.Now(),
	}
	f.inserted = append(f.inserted, t)
	return t, nil
}

func (f *fakeTransactionWriter) InsertLink(_ context.Context, outTxID, inTxID uuid.UUID) (*transaction.TransferLink, error) {
	l := &transaction.TransferLink{
		ID:        uuid.Must(uuid.NewV4()),
		OutTxID:   outTxID,
		InTxID:    inTxID,
		CreatedAt: time.Now(),
	}
	f.links = append(f.links, l)
	return l, nil
}

func (f *fakeTransactionWriter) SoftDelete(_ context.Context, ids ...uuid.UUID) (int64, error) {
	f.deleted = append(f.deleted, ids...)
	if f.deleteN > 0 {
		return f.deleteN, nil
	}
	return int64(len(ids)), nil
}

type fakeRecurringWriter struct {
	advanced    [][2]time.Time
	deactivated []uuid.UUID

	claimFail      bool
	deactivateFail bool
}

func (f *fakeRecurringWriter) Insert(_ context.Context, create *recurring.RuleCreate) (*recurring.Rule, error) {
	return &recurring.Rule{
		ID:         uuid.Must(uuid.NewV4()),
		OwnerID:    create.OwnerID,
		WalletID:   create.WalletID,
		CategoryID: create.CategoryID,
		Type:       create.Type,
		Amount:     create.Amount,
		Merchant:   create.Merchant,
		Note:       create.Note,
		Frequency:  create.Frequency,
		Interval:   create.Interval,
		StartDate:  create.StartDate,
		NextRunAt:  create.NextRunAt,
		EndDate:    create.EndDate,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}, nil
}

func (f *fakeRecurringWriter) AdvanceCursor(_ context.Context, _ uuid.UUID, from, to time.Time) (bool, error) {
	if f.claimFail {
		return false, nil
	}
	f.advanced = append(f.advanced, [2]time.Time{from, to})
	return true, nil
}

func (f *fakeRecurringWriter) Deactivate(_ context.Context, id uuid.UUID, _ time.Time) (bool, error) {
	if f.deactivateFail {
		return false, nil
	}
	f.deactivated = append(f.deactivated, id)
	return true, nil
}

type fakeWalletWriter struct{}

func (fakeWalletWriter) Insert(_ context.Context, create *wallet.WalletCreate) (*wallet.Wallet, error) {
	return &wallet.Wallet{
		ID:             uuid.Must(uuid.NewV4()),
		OwnerID:        create.OwnerID,
		Name:           create.Name,
		Type:           create.Type,
		Currency:       create.Currency,
		OpeningBalance: create.OpeningBalance,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}, nil
}

type fakeCategoryWriter struct{}

func (fakeCategoryWriter) Insert(_ context.Context, create *category.CategoryCreate) (*category.Category, error) {
	return &category.Category{
		ID:       uuid.Must(uuid.NewV4()),
		OwnerID:  create.OwnerID,
		Type:     create.Type,
		Name:     create.Name,
		ParentID: create.ParentID,
	}, nil
}

type fakeFxRateWriter struct{}

func (fakeFxRateWriter) Insert(_ context.Context, create *fxrate.RateCreate) (*fxrate.Rate, error) {
	return &fxrate.Rate{
		ID:    uuid.Must(uuid.NewV4()),
		Date:  create.Date,
		Base:  create.Base,
		Quote: create.Quote,
		Rate:  create.Rate,
	}, nil
}

type fakeBudgetWriter struct{}

func (fakeBudgetWriter) Insert(_ context.Context, create *budget.BudgetCreate) (*budget.Budget, error) {
	return &budget.Budget{
		ID:              uuid.Must(uuid.NewV4()),
		OwnerID:         create.OwnerID,
		Month:           create.Month,
		Scope:           create.Scope,
		CategoryID:      create.CategoryID,
		LimitBaseAmount: create.LimitBaseAmount,
		CreatedAt:       time.Now(),
	}, nil
}

type fakeInsightWriter struct{}

func (fakeInsightWriter) Upsert(_ context.Context, up *insight.InsightUpsert) (*insight.Insight, error) {
	return &insight.Insight{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   up.OwnerID,
		Month:     up.Month,
		Kind:      up.Kind,
		Language:  up.Language,
		Content:   up.Content,
		Meta:      up.Meta,
		CreatedAt: time.Now(),
	}, nil
}

// fakeProcessor runs every action inline against the fake writers, mirroring
// the operator's perform-then-commit loop without goroutines or a database.
type fakeProcessor struct {
	writer    *storage.Writer
	processed []actions.IAction
	err       error
}

func newFakeProcessor() (*fakeProcessor, *fakeTransactionWriter, *fakeRecurringWriter) {
	txWriter := &fakeTransactionWriter{}
	recurringWriter := &fakeRecurringWriter{}
	p := &fakeProcessor{
		writer: &storage.Writer{
			Wallets:      fakeWalletWriter{},
			FxRates:      fakeFxRateWriter{},
			Categories:   fakeCategoryWriter{},
			Transactions: txWriter,
			Budgets:      fakeBudgetWriter{},
			Recurrings:   recurringWriter,
			Insights:     fakeInsightWriter{},
		},
	}
	return p, txWriter, recurringWriter
}

func (p *fakeProcessor) Process(ctx context.Context, action actions.IAction) error {
	if p.err != nil {
		return p.err
	}
	p.processed = append(p.processed, action)
	return action.Perform(ctx, p.writer)
}
