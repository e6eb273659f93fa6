package currency

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

// IWriter defines write operations on the currency registry.
type IWriter interface {
	Upsert(ctx context.Context, c *Currency) error
}

var _ IWriter = (*Writer)(nil)

type Writer struct {
	exec db.DBTX
}

func NewWriter(exec db.DBTX) *Writer {
	return &Writer{exec: exec}
}

// Upsert inserts a currency or refreshes its cosmetic fields. The code
// itself is immutable.
func (w *Writer) Upsert(ctx context.Context, c *Currency) error {
	const query = `
		INSERT INTO currencies (code, name, symbol)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, symbol = EXCLUDED.symbol`

	_, err := w.exec.Exec(ctx, query, c.Code, c.Name, c.Symbol)
	return err
}
