package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ ITransactionTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

const txColumns = `id, owner_id, wallet_id, type, occurred_at, amount, currency,
	fx_rate, base_amount, category_id, merchant, note, is_deleted, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (*Transaction, error) {
	t := &Transaction{}
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.WalletID, &t.Type, &t.OccurredAt, &t.Amount, &t.Currency,
		&t.FxRate, &t.BaseAmount, &t.CategoryID, &t.Merchant, &t.Note, &t.IsDeleted, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.exec.QueryRow(ctx, query, id))
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return t, nil
}

// List returns non-deleted transactions matching the filter, newest first.
// One extra row past the limit is fetched so callers can detect a next page.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE owner_id = $1 AND NOT is_deleted`
	args := []any{filter.OwnerID}

	if filter.WalletID != nil {
		args = append(args, *filter.WalletID)
		query += fmt.Sprintf(" AND wallet_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.MaxCreationTime != nil {
		args = append(args, *filter.MaxCreationTime)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += " ORDER BY occurred_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit+1)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *Reader) SumBaseAmount(ctx context.Context, filter *SumFilter) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(base_amount), 0)
		FROM transactions
		WHERE owner_id = $1 AND NOT is_deleted AND type = $2
		  AND occurred_at >= $3 AND occurred_at < $4`
	args := []any{filter.OwnerID, filter.Type, filter.From, filter.To}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	var sum decimal.Decimal
	if err := r.exec.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *Reader) CountInRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM transactions
		WHERE owner_id = $1 AND NOT is_deleted AND occurred_at >= $2 AND occurred_at < $3`

	var n int64
	if err := r.exec.QueryRow(ctx, query, ownerID, from, to).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// TopCategories returns the biggest expense categories for the range,
// uncategorized spending grouped under an empty label.
func (r *Reader) TopCategories(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]GroupTotal, error) {
	const query = `
		SELECT COALESCE(c.name, ''), SUM(t.base_amount) AS total
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.owner_id = $1 AND NOT t.is_deleted AND t.type = 'expense'
		  AND t.occurred_at >= $2 AND t.occurred_at < $3
		GROUP BY c.name
		ORDER BY total DESC
		LIMIT $4`

	return r.groupTotals(ctx, query, ownerID, from, to, limit)
}

func (r *Reader) TopMerchants(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]GroupTotal, error) {
	const query = `
		SELECT merchant, SUM(base_amount) AS total
		FROM transactions
		WHERE owner_id = $1 AND NOT is_deleted AND type = 'expense' AND merchant <> ''
		  AND occurred_at >= $2 AND occurred_at < $3
		GROUP BY merchant
		ORDER BY total DESC
		LIMIT $4`

	return r.groupTotals(ctx, query, ownerID, from, to, limit)
}

func (r *Reader) groupTotals(ctx context.Context, query string, ownerID uuid.UUID, from, to time.Time, limit int) ([]GroupTotal, error) {
	rows, err := r.exec.Query(ctx, query, ownerID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GroupTotal
	for rows.Next() {
		var g GroupTotal
		if err := rows.Scan(&g.Label, &g.Total); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *Reader) FindLinkByID(ctx context.Context, id uuid.UUID) (*TransferLink, error) {
	const query = `
		SELECT id, out_tx_id, in_tx_id, created_at
		FROM transfer_links
		WHERE id = $1`

	l := &TransferLink{}
	err := r.exec.QueryRow(ctx, query, id).Scan(&l.ID, &l.OutTxID, &l.InTxID, &l.CreatedAt)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return l, nil
}

func (r *Reader) FindLinkByTxID(ctx context.Context, txID uuid.UUID) (*TransferLink, error) {
	const query = `
		SELECT id, out_tx_id, in_tx_id, created_at
		FROM transfer_links
		WHERE out_tx_id = $1 OR in_tx_id = $1`

	l := &TransferLink{}
	err := r.exec.QueryRow(ctx, query, txID).Scan(&l.ID, &l.OutTxID, &l.InTxID, &l.CreatedAt)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return l, nil
}
