package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
)

// BudgetStatus is the API response model for one budget's position.
type BudgetStatus struct {
	Budget      Budget `json:"budget" doc:"The budget definition"`
	Spent       string `json:"spent" doc:"Expense total for the month in the base currency"`
	Remaining   string `json:"remaining" doc:"Limit minus spent, negative when over budget"`
	PercentUsed string `json:"percentUsed" doc:"Spent as a percentage of the limit, 0 when the limit is 0"`
}

// BudgetStatusInput is the Huma input for the budget status report.
type BudgetStatusInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Month   string `path:"month" doc:"Month to report, YYYY-MM"`
}

// BudgetStatusResponseBody is the response body for the budget status report.
type BudgetStatusResponseBody struct {
	Month        string         `json:"month" doc:"Reported month"`
	BaseCurrency string         `json:"baseCurrency" doc:"Currency of all amounts"`
	Budgets      []BudgetStatus `json:"budgets" doc:"Status of every budget for the month"`
}

// BudgetStatusOutput is the Huma output for the budget status report.
type BudgetStatusOutput struct {
	Body BudgetStatusResponseBody
}

// statusReporter is the interface for the budget status report.
type statusReporter interface {
	GetStatus(ctx context.Context, ownerID uuid.UUID, month string) ([]*service.BudgetStatus, error)
}

// BudgetStatusHandler handles GET /v1/budgets/{month}/status.
type BudgetStatusHandler struct {
	BudgetService statusReporter
}

// NewBudgetStatusHandler creates a new BudgetStatusHandler.
func NewBudgetStatusHandler(svc statusReporter) *BudgetStatusHandler {
	return &BudgetStatusHandler{BudgetService: svc}
}

// Register registers the budget status endpoint with the Huma API.
func (h *BudgetStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-status",
		Method:      http.MethodGet,
		Path:        "/v1/budgets/{month}/status",
		Summary:     "Budget status",
		Description: "Reports spent, remaining and percent used for every budget in the month.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *BudgetStatusHandler) handle(ctx context.Context, input *BudgetStatusInput) (*BudgetStatusOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	statuses, err := h.BudgetService.GetStatus(ctx, ownerID, input.Month)
	if err != nil {
		return nil, apierror.Map(err, "failed to compute budget status")
	}

	resp := BudgetStatusResponseBody{
		Month:   input.Month,
		Budgets: make([]BudgetStatus, len(statuses)),
	}
	for i, s := range statuses {
		resp.BaseCurrency = s.BaseCurrency
		resp.Budgets[i] = BudgetStatus{
			Budget:      toAPI(s.Budget),
			Spent:       s.Spent.String(),
			Remaining:   s.Remaining.String(),
			PercentUsed: s.PercentUsed.String(),
		}
	}

	return &BudgetStatusOutput{Body: resp}, nil
}
