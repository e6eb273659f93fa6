package budget

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type Scope string

const (
	ScopeTotal    Scope = "total"
	ScopeCategory Scope = "category"
)

// Budget is a monthly spending limit in the owner's base currency, either
// for everything (total) or for one category. The alert flags are one-way
// markers consumed by the notification collaborator; this engine only
// exposes them.
type Budget struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Month           string
	Scope           Scope
	CategoryID      *uuid.UUID
	CategoryName    *string
	LimitBaseAmount decimal.Decimal
	Alert80Sent     bool
	Alert100Sent    bool
	CreatedAt       time.Time
}

// BudgetCreate is the input for creating a budget row.
type BudgetCreate struct {
	OwnerID         uuid.UUID
	Month           string
	Scope           Scope
	CategoryID      *uuid.UUID
	LimitBaseAmount decimal.Decimal
}

// IBudgetTable defines the interface for budget reads.
//
//go:generate mockery --name IBudgetTable --output mock_IBudgetTable.go
type IBudgetTable interface {
	ListForMonth(ctx context.Context, ownerID uuid.UUID, month string) ([]*Budget, error)
}

// IWriter defines budget write operations.
type IWriter interface {
	Insert(ctx context.Context, create *BudgetCreate) (*Budget, error)
}
