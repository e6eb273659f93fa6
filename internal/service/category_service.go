package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/db"
)

// CategoryService creates and lists transaction categories.
type CategoryService struct {
	categories category.ICategoryTable
	ops        Processor
}

func NewCategoryService(categories category.ICategoryTable, ops Processor) *CategoryService {
	return &CategoryService{categories: categories, ops: ops}
}

// CreateCategoryInput is the input for a new category.
type CreateCategoryInput struct {
	Type     category.CategoryType
	Name     string
	ParentID *uuid.UUID
}

func (s *CategoryService) CreateCategory(ctx context.Context, ownerID uuid.UUID, in CreateCategoryInput) (*category.Category, error) {
	v := &validator{}
	v.checkf(strings.TrimSpace(in.Name) != "", "name is required")
	v.checkf(in.Type == category.TypeExpense || in.Type == category.TypeIncome,
		"type must be expense or income")
	if err := v.err(); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.categories.FindByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if parent.OwnerID != ownerID {
			return nil, &OwnershipError{Resource: "category"}
		}
		if parent.Type != in.Type {
			return nil, &ValidationError{Violations: []string{"parent category has a different type"}}
		}
	}

	act := &actions.CreateCategory{
		Create: category.CategoryCreate{
			OwnerID:  ownerID,
			Type:     in.Type,
			Name:     strings.TrimSpace(in.Name),
			ParentID: in.ParentID,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		return nil, err
	}
	return act.Result, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	return s.categories.ListByOwner(ctx, ownerID)
}
