package recurring

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

// Rule is a recurring transaction template. NextRunAt is the single
// due-timestamp cursor; advancing it is the commit point for one cycle.
type Rule struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	WalletID   uuid.UUID
	CategoryID *uuid.UUID
	Type       string
	Amount     decimal.Decimal
	Merchant   string
	Note       string
	Frequency  Frequency
	Interval   int
	StartDate  time.Time
	NextRunAt  time.Time
	EndDate    *time.Time
	IsActive   bool
	CreatedAt  time.Time
}

// RuleCreate is the input for creating a rule.
type RuleCreate struct {
	OwnerID    uuid.UUID
	WalletID   uuid.UUID
	CategoryID *uuid.UUID
	Type       string
	Amount     decimal.Decimal
	Merchant   string
	Note       string
	Frequency  Frequency
	Interval   int
	StartDate  time.Time
	NextRunAt  time.Time
	EndDate    *time.Time
}

// IRecurringTable defines the interface for rule reads.
//
//go:generate mockery --name IRecurringTable --output mock_IRecurringTable.go
type IRecurringTable interface {
	ListDue(ctx context.Context, now time.Time) ([]*Rule, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Rule, error)
}

// IWriter defines rule write operations. AdvanceCursor and Deactivate are
// compare-and-swap on next_run_at: they succeed only if the cursor still
// holds the value the caller read, which makes concurrent due scans
// at-most-once per cycle.
type IWriter interface {
	Insert(ctx context.Context, create *RuleCreate) (*Rule, error)
	AdvanceCursor(ctx context.Context, id uuid.UUID, from, to time.Time) (bool, error)
	Deactivate(ctx context.Context, id uuid.UUID, cursor time.Time) (bool, error)
}
