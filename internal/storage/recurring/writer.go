package recurring

import (
	"context"
	"time"

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

func (w *Writer) Insert(ctx context.Context, create *RuleCreate) (*Rule, error) {
	query := `
		INSERT INTO recurring_transactions
			(owner_id, wallet_id, category_id, type, amount, merchant, note,
			 frequency, interval, start_date, next_run_at, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + ruleColumns

	return scanRule(w.exec.QueryRow(ctx, query,
		create.OwnerID, create.WalletID, create.CategoryID, create.Type, create.Amount,
		create.Merchant, create.Note, create.Frequency, create.Interval,
		create.StartDate, create.NextRunAt, create.EndDate,
	))
}

// AdvanceCursor moves next_run_at from `from` to `to` only if the cursor
// still reads `from`. A false return means another scan claimed the cycle.
func (w *Writer) AdvanceCursor(ctx context.Context, id uuid.UUID, from, to time.Time) (bool, error) {
	const query = `
		UPDATE recurring_transactions
		SET next_run_at = $3
		WHERE id = $1 AND is_active AND next_run_at = $2`

	tag, err := w.exec.Exec(ctx, query, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Deactivate retires an expired rule, guarded by the same cursor check so a
// concurrent scan cannot both expire and execute it.
func (w *Writer) Deactivate(ctx context.Context, id uuid.UUID, cursor time.Time) (bool, error) {
	const query = `
		UPDATE recurring_transactions
		SET is_active = FALSE
		WHERE id = $1 AND is_active AND next_run_at = $2`

	tag, err := w.exec.Exec(ctx, query, id, cursor)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
