package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/satang-labs/ledger-server/internal/config"
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

// Storage bundles the connection pool with the per-entity readers. All
// writes go through a Writer obtained from Write, so a single pgx.Tx spans
// every row an action touches.
type Storage struct {
	Pool         *pgxpool.Pool
	Users        user.IUserTable
	Currencies   currency.ICurrencyTable
	Wallets      wallet.IWalletTable
	FxRates      fxrate.IFxRateTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
	Budgets      budget.IBudgetTable
	Recurrings   recurring.IRecurringTable
	Insights     insight.IInsightTable
}

func New(ctx context.Context, env *config.Config) (*Storage, error) {
	pool, err := pgxpool.New(ctx, env.PostgresURL())
	if err != nil {
		return nil, err
	}

	return &Storage{
		Pool:         pool,
		Users:        user.NewReader(pool),
		Currencies:   currency.NewReader(pool),
		Wallets:      wallet.NewReader(pool),
		FxRates:      fxrate.NewReader(pool),
		Categories:   category.NewReader(pool),
		Transactions: transaction.NewReader(pool),
		Budgets:      budget.NewReader(pool),
		Recurrings:   recurring.NewReader(pool),
		Insights:     insight.NewReader(pool),
	}, nil
}

// Write begins a transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() {
	s.Pool.Close()
}
