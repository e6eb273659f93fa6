package insight

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const KindMonthlySummary = "monthly_summary"

// Insight is a generated summary for one owner/month, persisted so repeated
// requests do not re-invoke the text generator. Meta keeps the numeric stats
// the prose was built from plus the provider that produced it.
type Insight struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Month     string
	Kind      string
	Language  string
	Content   string
	Meta      map[string]any
	CreatedAt time.Time
}

// InsightUpsert is the input for writing an insight. The (owner, month,
// kind, language) key is unique; a rerun replaces the previous content.
type InsightUpsert struct {
	OwnerID  uuid.UUID
	Month    string
	Kind     string
	Language string
	Content  string
	Meta     map[string]any
}

// IInsightTable defines the interface for insight reads.
//
//go:generate mockery --name IInsightTable --output mock_IInsightTable.go
type IInsightTable interface {
	Find(ctx context.Context, ownerID uuid.UUID, month, kind, language string) (*Insight, error)
}

// IWriter defines insight write operations.
type IWriter interface {
	Upsert(ctx context.Context, up *InsightUpsert) (*Insight, error)
}
