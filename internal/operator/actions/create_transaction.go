package actions

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
)

// CreateTransaction inserts one ledger row. The fx_rate and base_amount in
// Create were computed by the ledger service before enqueueing; the action
// only persists the snapshot.
type CreateTransaction struct {
	Create transaction.TransactionCreate

	Result *transaction.Transaction
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Transactions.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}
