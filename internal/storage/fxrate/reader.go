package fxrate

import (
	"context"
	"time"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IFxRateTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

// Find returns the rate stored for the exact date and ordered pair, or
// db.ErrNotFound. There is deliberately no nearest-date fallback.
func (r *Reader) Find(ctx context.Context, on time.Time, base, quote string) (*Rate, error) {
	const query = `
		SELECT id, date, base, quote, rate
		FROM fx_rates
		WHERE date = $1 AND base = $2 AND quote = $3`

	row := &Rate{}
	err := r.exec.QueryRow(ctx, query, on, base, quote).Scan(
		&row.ID, &row.Date, &row.Base, &row.Quote, &row.Rate,
	)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return row, nil
}
