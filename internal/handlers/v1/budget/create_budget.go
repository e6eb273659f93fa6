package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/budget"
)

// Budget is the API response model for a budget.
type Budget struct {
	ID           string  `json:"id" doc:"Budget UUID"`
	Month        string  `json:"month" doc:"Budget month, YYYY-MM"`
	Scope        string  `json:"scope" doc:"total or category"`
	CategoryID   *string `json:"categoryID,omitempty" doc:"Category UUID for category-scoped budgets"`
	CategoryName *string `json:"categoryName,omitempty" doc:"Category name for category-scoped budgets"`
	Limit        string  `json:"limit" doc:"Monthly limit in the owner's base currency"`
	Alert80Sent  bool    `json:"alert80Sent" doc:"One-way 80% alert marker, flipped by the notifier"`
	Alert100Sent bool    `json:"alert100Sent" doc:"One-way 100% alert marker, flipped by the notifier"`
	CreatedAt    string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAPI(b *budget.Budget) Budget {
	out := Budget{
		ID:           b.ID.String(),
		Month:        b.Month,
		Scope:        string(b.Scope),
		CategoryName: b.CategoryName,
		Limit:        b.LimitBaseAmount.String(),
		Alert80Sent:  b.Alert80Sent,
		Alert100Sent: b.Alert100Sent,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
	if b.CategoryID != nil {
		s := b.CategoryID.String()
		out.CategoryID = &s
	}
	return out
}

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	Month      string `json:"month" required:"true" doc:"Budget month, YYYY-MM"`
	Scope      string `json:"scope" required:"true" enum:"total,category" doc:"Budget scope"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID, required for category scope"`
	Limit      string `json:"limit" required:"true" doc:"Monthly limit in the owner's base currency"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    CreateBudgetBody
}

// CreateBudgetOutput is the Huma output for creating a budget.
type CreateBudgetOutput struct {
	Body Budget
}

// budgetCreator is the interface for creating budgets.
type budgetCreator interface {
	CreateBudget(ctx context.Context, ownerID uuid.UUID, in service.CreateBudgetInput) (*budget.Budget, error)
}

// CreateBudgetHandler handles POST /v1/budgets.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

// NewCreateBudgetHandler creates a new CreateBudgetHandler.
func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          "/v1/budgets",
		Summary:       "Create budget",
		Description:   "Creates a monthly spending limit, either total or for one category.",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	limit, err := decimal.NewFromString(input.Body.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid limit", err)
	}

	in := service.CreateBudgetInput{
		Month:           input.Body.Month,
		Scope:           budget.Scope(input.Body.Scope),
		LimitBaseAmount: limit,
	}
	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		in.CategoryID = &categoryID
	}

	created, err := h.BudgetService.CreateBudget(ctx, ownerID, in)
	if err != nil {
		return nil, apierror.Map(err, "failed to create budget")
	}

	return &CreateBudgetOutput{Body: toAPI(created)}, nil
}
