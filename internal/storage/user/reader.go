package user

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IUserTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const query = `
		SELECT id, email, base_currency, created_at
		FROM users
		WHERE id = $1`

	u := &User{}
	err := r.exec.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.BaseCurrency, &u.CreatedAt)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return u, nil
}
