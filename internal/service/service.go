package service

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/textgen"
)

// Processor enqueues an action and blocks until its transaction commits or
// rolls back. Satisfied by operator.OperatorDelegator.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Services bundles the service layer for wiring into the handlers.
type Services struct {
	Fx        *FxService
	Ledger    *LedgerService
	Recurring *RecurringService
	Budget    *BudgetService
	Insight   *InsightService
	Wallet    *WalletService
	Category  *CategoryService
	Currency  *CurrencyService
}

func New(s *storage.Storage, ops Processor, gen textgen.SummaryGenerator) *Services {
	fx := NewFxService(s.FxRates, ops)
	return &Services{
		Fx:        fx,
		Ledger:    NewLedgerService(s.Users, s.Wallets, s.Categories, s.Transactions, fx, ops),
		Recurring: NewRecurringService(s.Users, s.Wallets, s.Categories, s.Recurrings, fx, ops),
		Budget:    NewBudgetService(s.Users, s.Categories, s.Budgets, s.Transactions, ops),
		Insight:   NewInsightService(s.Users, s.Transactions, s.Insights, gen, ops),
		Wallet:    NewWalletService(s.Currencies, s.Wallets, ops),
		Category:  NewCategoryService(s.Categories, ops),
		Currency:  NewCurrencyService(s.Currencies),
	}
}
