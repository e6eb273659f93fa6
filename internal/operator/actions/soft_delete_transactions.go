package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage"
)

// SoftDeleteTransactions flips the deleted flag on the given rows. Used for
// single transactions and, with both leg IDs, for transfer-level deletes.
type SoftDeleteTransactions struct {
	IDs []uuid.UUID

	Deleted int64
}

func (a *SoftDeleteTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	n, err := writer.Transactions.SoftDelete(ctx, a.IDs...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRowsUpdated
	}
	a.Deleted = n
	return nil
}
