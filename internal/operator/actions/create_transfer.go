package actions

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
)

// CreateTransfer writes both legs of a transfer and the link pairing them
// in one transaction. If any insert fails the whole unit rolls back, so a
// transfer never exists half-written.
type CreateTransfer struct {
	Out transaction.TransactionCreate
	In  transaction.TransactionCreate

	OutTx *transaction.Transaction
	InTx  *transaction.Transaction
	Link  *transaction.TransferLink
}

func (a *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	outTx, err := writer.Transactions.Insert(ctx, &a.Out)
	if err != nil {
		return err
	}

	inTx, err := writer.Transactions.Insert(ctx, &a.In)
	if err != nil {
		return err
	}

	link, err := writer.Transactions.InsertLink(ctx, outTx.ID, inTx.ID)
	if err != nil {
		return err
	}

	a.OutTx = outTx
	a.InTx = inTx
	a.Link = link
	return nil
}
