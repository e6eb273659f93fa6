package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/budget"
	"github.com/satang-labs/ledger-server/internal/storage/category"
	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
	"github.com/satang-labs/ledger-server/internal/storage/user"
)

var hundred = decimal.NewFromInt(100)

// BudgetService creates monthly budgets and computes their live status from
// the base-amount snapshots on the ledger.
type BudgetService struct {
	users        user.IUserTable
	categories   category.ICategoryTable
	budgets      budget.IBudgetTable
	transactions transaction.ITransactionTable
	ops          Processor
}

func NewBudgetService(
	users user.IUserTable,
	categories category.ICategoryTable,
	budgets budget.IBudgetTable,
	transactions transaction.ITransactionTable,
	ops Processor,
) *BudgetService {
	return &BudgetService{
		users:        users,
		categories:   categories,
		budgets:      budgets,
		transactions: transactions,
		ops:          ops,
	}
}

// CreateBudgetInput is the input for one monthly limit.
type CreateBudgetInput struct {
	Month           string
	Scope           budget.Scope
	CategoryID      *uuid.UUID
	LimitBaseAmount decimal.Decimal
}

func (s *BudgetService) CreateBudget(ctx context.Context, ownerID uuid.UUID, in CreateBudgetInput) (*budget.Budget, error) {
	v := &validator{}
	v.checkf(in.Scope == budget.ScopeTotal || in.Scope == budget.ScopeCategory,
		"scope must be total or category")
	v.checkf(!in.LimitBaseAmount.IsNegative(), "limit must be >= 0")
	v.checkf(hasAtMostTwoDecimals(in.LimitBaseAmount), "limit must have at most 2 decimal places")
	if in.Scope == budget.ScopeCategory {
		v.checkf(in.CategoryID != nil, "category is required for a category-scoped budget")
	} else {
		v.checkf(in.CategoryID == nil, "category must be empty for a total budget")
	}
	if err := ValidateMonth(in.Month); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			v.violations = append(v.violations, ve.Violations...)
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		c, err := s.categories.FindByID(ctx, *in.CategoryID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if c.OwnerID != ownerID {
			return nil, &OwnershipError{Resource: "category"}
		}
	}

	act := &actions.CreateBudget{
		Create: budget.BudgetCreate{
			OwnerID:         ownerID,
			Month:           in.Month,
			Scope:           in.Scope,
			CategoryID:      in.CategoryID,
			LimitBaseAmount: in.LimitBaseAmount,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, &ValidationError{Violations: []string{"a budget for this month and scope already exists"}}
		}
		return nil, err
	}
	return act.Result, nil
}

// BudgetStatus is one budget with its aggregated position for the month.
// All amounts are in the owner's base currency.
type BudgetStatus struct {
	Budget       *budget.Budget
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	PercentUsed  decimal.Decimal
	BaseCurrency string
}

// GetStatus reports every budget the owner has for the month. Spending is
// the sum of non-deleted expense base amounts in the month window; transfer
// legs and income never count. A zero limit reports zero percent used
// rather than dividing by zero.
func (s *BudgetService) GetStatus(ctx context.Context, ownerID uuid.UUID, month string) ([]*BudgetStatus, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	from, to, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgets.ListForMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	statuses := make([]*BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		filter := &transaction.SumFilter{
			OwnerID: ownerID,
			Type:    transaction.TypeExpense,
			From:    from,
			To:      to,
		}
		if b.Scope == budget.ScopeCategory {
			filter.CategoryID = b.CategoryID
		}

		spent, err := s.transactions.SumBaseAmount(ctx, filter)
		if err != nil {
			return nil, err
		}

		percent := decimal.Zero
		if b.LimitBaseAmount.IsPositive() {
			percent = spent.Div(b.LimitBaseAmount).Mul(hundred).Round(2)
		}

		statuses = append(statuses, &BudgetStatus{
			Budget:       b,
			Spent:        spent,
			Remaining:    b.LimitBaseAmount.Sub(spent),
			PercentUsed:  percent,
			BaseCurrency: owner.BaseCurrency,
		})
	}
	return statuses, nil
}
