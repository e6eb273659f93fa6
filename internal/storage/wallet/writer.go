package wallet

import (
	"context"

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

func (w *Writer) Insert(ctx context.Context, create *WalletCreate) (*Wallet, error) {
	const query = `
		INSERT INTO wallets (owner_id, name, type, currency, opening_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, name, type, currency, opening_balance, is_active, created_at`

	row := &Wallet{}
	err := w.exec.QueryRow(ctx, query,
		create.OwnerID, create.Name, create.Type, create.Currency, create.OpeningBalance,
	).Scan(
		&row.ID, &row.OwnerID, &row.Name, &row.Type, &row.Currency,
		&row.OpeningBalance, &row.IsActive, &row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}
