package category

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ ICategoryTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	const query = `
		SELECT id, owner_id, type, name, parent_id
		FROM categories
		WHERE id = $1`

	c := &Category{}
	err := r.exec.QueryRow(ctx, query, id).Scan(&c.ID, &c.OwnerID, &c.Type, &c.Name, &c.ParentID)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return c, nil
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	const query = `
		SELECT id, owner_id, type, name, parent_id
		FROM categories
		WHERE owner_id = $1
		ORDER BY type, name`

	rows, err := r.exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Type, &c.Name, &c.ParentID); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
