package wallet

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IWalletTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	const query = `
		SELECT id, owner_id, name, type, currency, opening_balance, is_active, created_at
		FROM wallets
		WHERE id = $1`

	w := &Wallet{}
	err := r.exec.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Type, &w.Currency,
		&w.OpeningBalance, &w.IsActive, &w.CreatedAt,
	)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return w, nil
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Wallet, error) {
	const query = `
		SELECT id, owner_id, name, type, currency, opening_balance, is_active, created_at
		FROM wallets
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Wallet
	for rows.Next() {
		w := &Wallet{}
		err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Name, &w.Type, &w.Currency,
			&w.OpeningBalance, &w.IsActive, &w.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
