package category

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

func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	const query = `
		INSERT INTO categories (owner_id, type, name, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, type, name, parent_id`

	row := &Category{}
	err := w.exec.QueryRow(ctx, query, create.OwnerID, create.Type, create.Name, create.ParentID).Scan(
		&row.ID, &row.OwnerID, &row.Type, &row.Name, &row.ParentID,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}
