package insight

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

func (w *Writer) Upsert(ctx context.Context, up *InsightUpsert) (*Insight, error) {
	const query = `
		INSERT INTO ai_insights (owner_id, month, kind, language, content, meta)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id, month, kind, language)
		DO UPDATE SET content = EXCLUDED.content, meta = EXCLUDED.meta
		RETURNING id, owner_id, month, kind, language, content, meta, created_at`

	i := &Insight{}
	err := w.exec.QueryRow(ctx, query,
		up.OwnerID, up.Month, up.Kind, up.Language, up.Content, up.Meta,
	).Scan(&i.ID, &i.OwnerID, &i.Month, &i.Kind, &i.Language, &i.Content, &i.Meta, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}
