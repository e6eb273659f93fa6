package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IBudgetTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListForMonth(ctx context.Context, ownerID uuid.UUID, month string) ([]*Budget, error) {
	const query = `
		SELECT b.id, b.owner_id, b.month, b.scope, b.category_id, c.name,
		       b.limit_base_amount, b.alert_80_sent, b.alert_100_sent, b.created_at
		FROM budgets b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.owner_id = $1 AND b.month = $2
		ORDER BY b.scope, c.name`

	rows, err := r.exec.Query(ctx, query, ownerID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Budget
	for rows.Next() {
		b := &Budget{}
		err := rows.Scan(
			&b.ID, &b.OwnerID, &b.Month, &b.Scope, &b.CategoryID, &b.CategoryName,
			&b.LimitBaseAmount, &b.Alert80Sent, &b.Alert100Sent, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
