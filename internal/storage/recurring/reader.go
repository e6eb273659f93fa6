package recurring

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IRecurringTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

const ruleColumns = `id, owner_id, wallet_id, category_id, type, amount, merchant, note,
	frequency, interval, start_date, next_run_at, end_date, is_active, created_at`

func scanRule(row interface{ Scan(...any) error }) (*Rule, error) {
	r := &Rule{}
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.WalletID, &r.CategoryID, &r.Type, &r.Amount, &r.Merchant, &r.Note,
		&r.Frequency, &r.Interval, &r.StartDate, &r.NextRunAt, &r.EndDate, &r.IsActive, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListDue returns active rules whose cursor has reached now, oldest first.
func (r *Reader) ListDue(ctx context.Context, now time.Time) ([]*Rule, error) {
	query := `SELECT ` + ruleColumns + `
		FROM recurring_transactions
		WHERE is_active AND next_run_at <= $1
		ORDER BY next_run_at, id`

	return r.list(ctx, query, now)
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Rule, error) {
	query := `SELECT ` + ruleColumns + `
		FROM recurring_transactions
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, ownerID)
}

func (r *Reader) list(ctx context.Context, query string, args ...any) ([]*Rule, error) {
	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}
