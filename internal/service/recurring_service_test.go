package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// -- NextRunAfter tests --

func TestNextRunAfter_Daily(t *testing.T) {
	current := time.Date(2025, 1, 30, 9, 0, 0, 0, time.UTC)
	next := NextRunAfter(recurring.FreqDaily, 3, current)
	assert.Equal(t, time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC), next)
}

func TestNextRunAfter_Weekly(t *testing.T) {
	current := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	next := NextRunAfter(recurring.FreqWeekly, 2, current)
	assert.Equal(t, time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC), next)
}

func TestNextRunAfter_MonthlyClampsTo28(t *testing.T) {
	// A rule anchored on the 31st must still fire in February.
	current := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)

	next := NextRunAfter(recurring.FreqMonthly, 1, current)
	assert.Equal(t, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), next)

	// Once clamped, the anchor stays on the 28th instead of drifting back up.
	next = NextRunAfter(recurring.FreqMonthly, 1, next)
	assert.Equal(t, time.Date(2025, 3, 28, 9, 0, 0, 0, time.UTC), next)
}

func TestNextRunAfter_MonthlyKeepsEarlyDays(t *testing.T) {
	current := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	next := NextRunAfter(recurring.FreqMonthly, 1, current)
	assert.Equal(t, time.Date(2025, 2, 15, 9, 0, 0, 0, time.UTC), next)
}

func TestNextRunAfter_MonthlyNoOverflow(t *testing.T) {
	// December + 2 months must land in February, never roll past it.
	current := time.Date(2024, 12, 29, 9, 0, 0, 0, time.UTC)
	next := NextRunAfter(recurring.FreqMonthly, 2, current)
	assert.Equal(t, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), next)
}

// -- fixtures --

type recurringFixture struct {
	svc       *RecurringService
	users     *mockUserTable
	wallets   *mockWalletTable
	cats      *mockCategoryTable
	rules     *mockRecurringTable
	rates     *mockFxRateTable
	ops       *fakeProcessor
	txWriter  *fakeTransactionWriter
	recWriter *fakeRecurringWriter
}

func newRecurringFixture(t *testing.T) *recurringFixture {
	t.Helper()
	f := &recurringFixture{
		users:   &mockUserTable{},
		wallets: &mockWalletTable{},
		cats:    &mockCategoryTable{},
		rules:   &mockRecurringTable{},
		rates:   &mockFxRateTable{},
	}
	f.ops, f.txWriter, f.recWriter = newFakeProcessor()
	fx := NewFxService(f.rates, f.ops)
	f.svc = NewRecurringService(f.users, f.wallets, f.cats, f.rules, fx, f.ops)
	return f
}

func (f *recurringFixture) owner(baseCurrency string) uuid.UUID {
	ownerID := uuid.Must(uuid.NewV4())
	f.users.On("FindByID", mock.Anything, ownerID).
		Return(&user.User{ID: ownerID, BaseCurrency: baseCurrency}, nil)
	return ownerID
}

func (f *recurringFixture) wallet(ownerID uuid.UUID, currency string) *wallet.Wallet {
	w := &wallet.Wallet{
		ID:       uuid.Must(uuid.NewV4()),
		OwnerID:  ownerID,
		Currency: currency,
		IsActive: true,
	}
	f.wallets.On("FindByID", mock.Anything, w.ID).Return(w, nil)
	return w
}

func monthlyRule(ownerID, walletID uuid.UUID, nextRunAt time.Time) *recurring.Rule {
	return &recurring.Rule{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   ownerID,
		WalletID:  walletID,
		Type:      string(transaction.TypeExpense),
		Amount:    decimal.RequireFromString("9.99"),
		Merchant:  "Streamflix",
		Frequency: recurring.FreqMonthly,
		Interval:  1,
		StartDate: nextRunAt.Truncate(24 * time.Hour),
		NextRunAt: nextRunAt,
		IsActive:  true,
	}
}

// -- CreateRule tests --

func TestCreateRule_DefaultsNextRun(t *testing.T) {
	f := newRecurringFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	w := f.wallet(ownerID, "USD")

	rule, err := f.svc.CreateRule(context.Background(), ownerID, CreateRuleInput{
		WalletID:  w.ID,
		Type:      transaction.TypeExpense,
		Amount:    decimal.RequireFromString("9.99"),
		Frequency: recurring.FreqMonthly,
		Interval:  1,
		StartDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC), rule.NextRunAt,
		"first run at 09:00 UTC on the start date")
	assert.True(t, rule.IsActive)
}

func TestCreateRule_Invalid(t *testing.T) {
	f := newRecurringFixture(t)

	_, err := f.svc.CreateRule(context.Background(), uuid.Must(uuid.NewV4()), CreateRuleInput{
		WalletID:  uuid.Must(uuid.NewV4()),
		Type:      transaction.TypeTransferOut,
		Amount:    decimal.Zero,
		Frequency: "yearly",
		Interval:  0,
	})

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.GreaterOrEqual(t, len(ve.Violations), 3, "all violations reported at once")
}

func TestCreateRule_EndBeforeStart(t *testing.T) {
	f := newRecurringFixture(t)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.CreateRule(context.Background(), uuid.Must(uuid.NewV4()), CreateRuleInput{
		WalletID:  uuid.Must(uuid.NewV4()),
		Type:      transaction.TypeExpense,
		Amount:    decimal.RequireFromString("5.00"),
		Frequency: recurring.FreqDaily,
		Interval:  1,
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	})

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

// -- RunDue tests --

func TestRunDue_OneCyclePerScan(t *testing.T) {
	f := newRecurringFixture(t)
	ownerID := f.owner("USD")
	w := f.wallet(ownerID, "USD")

	// Due since Jan 31 and scanned on Mar 1: only the Jan 31 cycle runs.
	// A rule several cycles behind catches up one scan at a time.
	rule := monthlyRule(ownerID, w.ID, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC))
	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.rules.On("ListDue", mock.Anything, asOf).Return([]*recurring.Rule{rule}, nil)

	report, err := f.svc.RunDue(context.Background(), asOf)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Executed)
	assert.Len(t, f.txWriter.inserted, 1)
	assert.Equal(t, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC), f.txWriter.inserted[0].OccurredAt)
	assert.Equal(t, "Streamflix", f.txWriter.inserted[0].Merchant)
	assert.Equal(t,
		[2]time.Time{
			time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC),
		},
		f.recWriter.advanced[0], "cursor advances exactly one clamped cycle")
}

func TestRunDue_CatchesUpAcrossScans(t *testing.T) {
	f := newRecurringFixture(t)
	ownerID := f.owner("USD")
	w := f.wallet(ownerID, "USD")

	rule := monthlyRule(ownerID, w.ID, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC))
	firstScan := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.rules.On("ListDue", mock.Anything, firstScan).Return([]*recurring.Rule{rule}, nil)

	_, err := f.svc.RunDue(context.Background(), firstScan)
	assert.NoError(t, err)

	// The rule is still behind, so the next scan picks it up at its
	// advanced cursor and executes the clamped Feb 28 cycle.
	caughtUp := monthlyRule(ownerID, w.ID, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC))
	caughtUp.ID = rule.ID
	secondScan := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	f.rules.On("ListDue", mock.Anything, secondScan).Return([]*recurring.Rule{caughtUp}, nil)

	report, err := f.svc.RunDue(context.Background(), secondScan)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Executed)
	assert.Len(t, f.txWriter.inserted, 2)
	assert.Equal(t, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC), f.txWriter.inserted[0].OccurredAt)
	assert.Equal(t, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), f.txWriter.inserted[1].OccurredAt)
}

func TestRunDue_DeactivatesExpiredRule(t *testing.T) {
	f := newRecurringFixture(t)
	ownerID := uuid.Must(uuid.NewV4())
	walletID := uuid.Must(uuid.NewV4())

	end := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	rule := monthlyRule(ownerID, walletID, time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC))
	rule.EndDate = &end

	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	f.rules.On("ListDue", mock.Anything, asOf).Return([]*recurring.Rule{rule}, nil)

	report, err := f.svc.RunDue(context.Background(), asOf)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Deactivated)
	assert.Zero(t, report.Executed)
	assert.Equal(t, []uuid.UUID{rule.ID}, f.recWriter.deactivated)
	assert.Empty(t, f.txWriter.inserted)
}

func TestRunDue_SkipsCycleClaimedElsewhere(t *testing.T) {
	f := newRecurringFixture(t)
	ownerID := f.owner("USD")
	w := f.wallet(ownerID, "USD")
	f.recWriter.claimFail = true

	rule := monthlyRule(ownerID, w.ID, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC))
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	f.rules.On("ListDue", mock.Anything, asOf).Return([]*recurring.Rule{rule}, nil)

	report, err := f.svc.RunDue(context.Background(), asOf)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Executed)
	assert.Empty(t, f.txWriter.inserted, "losing the cursor race writes nothing")
}

func TestRunDue_OneFailingRuleDoesNotStopOthers(t *testing.T) {
	f := newRecurringFixture(t)
	ownerID := f.owner("THB")
	usdWallet := f.wallet(ownerID, "USD")
	thbWallet := f.wallet(ownerID, "THB")

	// No USD->THB rate stored: the first rule's cycle fails, the second
	// rule needs no conversion and must still execute.
	failing := monthlyRule(ownerID, usdWallet.ID, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC))
	healthy := monthlyRule(ownerID, thbWallet.ID, time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC))

	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	f.rates.On("Find", mock.Anything, date, "USD", "THB").Return(nil, db.ErrNotFound)
	f.rates.On("Find", mock.Anything, date, "THB", "USD").Return(nil, db.ErrNotFound)

	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	f.rules.On("ListDue", mock.Anything, asOf).Return([]*recurring.Rule{failing, healthy}, nil)

	report, err := f.svc.RunDue(context.Background(), asOf)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Executed)
	assert.Len(t, f.txWriter.inserted, 1)
	assert.Equal(t, thbWallet.ID, f.txWriter.inserted[0].WalletID)
}
