package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	exec db.DBTX
	Reader
}

func NewWriter(exec db.DBTX) *Writer {
	return &Writer{
		exec:   exec,
		Reader: Reader{exec: exec},
	}
}

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := `
		INSERT INTO transactions
			(owner_id, wallet_id, type, occurred_at, amount, currency, fx_rate, base_amount, category_id, merchant, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + txColumns

	t, err := scanTransaction(w.exec.QueryRow(ctx, query,
		create.OwnerID, create.WalletID, create.Type, create.OccurredAt,
		create.Amount, create.Currency, create.FxRate, create.BaseAmount,
		create.CategoryID, create.Merchant, create.Note,
	))
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (w *Writer) InsertLink(ctx context.Context, outTxID, inTxID uuid.UUID) (*TransferLink, error) {
	const query = `
		INSERT INTO transfer_links (out_tx_id, in_tx_id)
		VALUES ($1, $2)
		RETURNING id, out_tx_id, in_tx_id, created_at`

	l := &TransferLink{}
	err := w.exec.QueryRow(ctx, query, outTxID, inTxID).Scan(&l.ID, &l.OutTxID, &l.InTxID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// SoftDelete flips the deleted flag on the given rows and reports how many
// were still live. Rows are never removed.
func (w *Writer) SoftDelete(ctx context.Context, ids ...uuid.UUID) (int64, error) {
	const query = `
		UPDATE transactions
		SET is_deleted = TRUE
		WHERE id = ANY($1) AND NOT is_deleted`

	tag, err := w.exec.Exec(ctx, query, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
