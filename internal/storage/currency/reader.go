package currency

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ ICurrencyTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByCode(ctx context.Context, code string) (*Currency, error) {
	const query = `
		SELECT code, name, symbol
		FROM currencies
		WHERE code = $1`

	c := &Currency{}
	err := r.exec.QueryRow(ctx, query, code).Scan(&c.Code, &c.Name, &c.Symbol)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return c, nil
}

func (r *Reader) List(ctx context.Context) ([]*Currency, error) {
	const query = `
		SELECT code, name, symbol
		FROM currencies
		ORDER BY code`

	rows, err := r.exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Currency
	for rows.Next() {
		c := &Currency{}
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
