package budget

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

func (w *Writer) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	const query = `
		INSERT INTO budgets (owner_id, month, scope, category_id, limit_base_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, month, scope, category_id, limit_base_amount,
		          alert_80_sent, alert_100_sent, created_at`

	b := &Budget{}
	err := w.exec.QueryRow(ctx, query,
		create.OwnerID, create.Month, create.Scope, create.CategoryID, create.LimitBaseAmount,
	).Scan(
		&b.ID, &b.OwnerID, &b.Month, &b.Scope, &b.CategoryID, &b.LimitBaseAmount,
		&b.Alert80Sent, &b.Alert100Sent, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
