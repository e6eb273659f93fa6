package fxrate

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

func (w *Writer) Insert(ctx context.Context, create *RateCreate) (*Rate, error) {
	const query = `
		INSERT INTO fx_rates (date, base, quote, rate)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, base, quote, rate`

	row := &Rate{}
	err := w.exec.QueryRow(ctx, query, create.Date, create.Base, create.Quote, create.Rate).Scan(
		&row.ID, &row.Date, &row.Base, &row.Quote, &row.Rate,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}
