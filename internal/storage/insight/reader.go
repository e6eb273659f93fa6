package insight

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/storage/db"
)

var _ IInsightTable = (*Reader)(nil)

type Reader struct {
	exec db.DBTX
}

func NewReader(exec db.DBTX) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) Find(ctx context.Context, ownerID uuid.UUID, month, kind, language string) (*Insight, error) {
	const query = `
		SELECT id, owner_id, month, kind, language, content, meta, created_at
		FROM ai_insights
		WHERE owner_id = $1 AND month = $2 AND kind = $3 AND language = $4`

	i := &Insight{}
	err := r.exec.QueryRow(ctx, query, ownerID, month, kind, language).Scan(
		&i.ID, &i.OwnerID, &i.Month, &i.Kind, &i.Language, &i.Content, &i.Meta, &i.CreatedAt,
	)
	if err != nil {
		return nil, db.AsNotFound(err)
	}
	return i, nil
}
