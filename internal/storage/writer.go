package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/satang-labs/ledger-server/internal/storage/budget"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/currency"
	"github.com/satang-labs/ledger-server/internal/storage/fxrate"
	"github.com/satang-labs/ledger-server/internal/storage/insight"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// Writer is one transactional unit of work. Either everything written
// through it commits, or Rollback leaves zero rows behind.
type Writer struct {
	tx           pgx.Tx
	Wallets      wallet.IWriter
	FxRates      fxrate.IWriter
	Categories   category.IWriter
	Currencies   currency.IWriter
	Transactions transaction.IWriter
	Budgets      budget.IWriter
	Recurrings   recurring.IWriter
	Insights     insight.IWriter
}

func NewWriter(tx pgx.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Wallets:      wallet.NewWriter(tx),
		FxRates:      fxrate.NewWriter(tx),
		Categories:   category.NewWriter(tx),
		Currencies:   currency.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Budgets:      budget.NewWriter(tx),
		Recurrings:   recurring.NewWriter(tx),
		Insights:     insight.NewWriter(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	if w.tx == nil {
		return nil
	}
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	if w.tx == nil {
		return nil
	}
	return w.tx.Rollback(ctx)
}
