package actions

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/storage/budget"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/fxrate"
	"github.com/satang-labs/ledger-server/internal/storage/insight"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// Plain single-insert actions. Validation happens in the services; these
// only persist and surface the created row.

type CreateWallet struct {
	Create wallet.WalletCreate
	Result *wallet.Wallet
}

func (a *CreateWallet) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Wallets.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}

type CreateCategory struct {
	Create category.CategoryCreate
	Result *category.Category
}

func (a *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Categories.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}

type CreateFxRate struct {
	Create fxrate.RateCreate
	Result *fxrate.Rate
}

func (a *CreateFxRate) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.FxRates.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}

type CreateBudget struct {
	Create budget.BudgetCreate
	Result *budget.Budget
}

func (a *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Budgets.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}

type CreateRecurring struct {
	Create recurring.RuleCreate
	Result *recurring.Rule
}

func (a *CreateRecurring) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Recurrings.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}

type UpsertInsight struct {
	Upsert insight.InsightUpsert
	Result *insight.Insight
}

func (a *UpsertInsight) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Insights.Upsert(ctx, &a.Upsert)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}
