package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type CategoryType string

const (
	TypeExpense CategoryType = "expense"
	TypeIncome  CategoryType = "income"
)

// Category groups transactions. Parent allows one practical level of
// nesting; the store does not chase or validate deeper trees.
type Category struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Type     CategoryType
	Name     string
	ParentID *uuid.UUID
}

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	OwnerID  uuid.UUID
	Type     CategoryType
	Name     string
	ParentID *uuid.UUID
}

// ICategoryTable defines the interface for category storage operations.
//
//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Category, error)
}

// IWriter defines category write operations.
type IWriter interface {
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
}
