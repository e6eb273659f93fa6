package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
)

// ExecuteRecurring runs one due cycle of a recurring rule: advance the
// cursor from Cursor to NextCursor, then materialize the transaction. The
// cursor advance is a compare-and-swap, so two concurrent scans cannot both
// execute the same cycle; the loser gets ErrCursorMoved. Because both writes
// share one transaction, a failed insert rolls the cursor back and the cycle
// stays claimable.
type ExecuteRecurring struct {
	RuleID     uuid.UUID
	Cursor     time.Time
	NextCursor time.Time
	Create     transaction.TransactionCreate

	Result *transaction.Transaction
}

func (a *ExecuteRecurring) Perform(ctx context.Context, writer *storage.Writer) error {
	claimed, err := writer.Recurrings.AdvanceCursor(ctx, a.RuleID, a.Cursor, a.NextCursor)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrCursorMoved
	}

	row, err := writer.Transactions.Insert(ctx, &a.Create)
	if err != nil {
		return err
	}
	a.Result = row
	return nil
}

// DeactivateRecurring retires a rule whose cursor is already past its end
// date. Guarded by the cursor so it cannot race a concurrent execution.
type DeactivateRecurring struct {
	RuleID uuid.UUID
	Cursor time.Time
}

func (a *DeactivateRecurring) Perform(ctx context.Context, writer *storage.Writer) error {
	ok, err := writer.Recurrings.Deactivate(ctx, a.RuleID, a.Cursor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCursorMoved
	}
	return nil
}
