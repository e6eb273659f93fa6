package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
)

// ListRulesInput is the Huma input for listing recurring rules.
type ListRulesInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
}

// ListRulesResponseBody is the response body for listing recurring rules.
type ListRulesResponseBody struct {
	Rules []Rule `json:"rules" doc:"All of the owner's rules, active and expired"`
}

// ListRulesOutput is the Huma output for listing recurring rules.
type ListRulesOutput struct {
	Body ListRulesResponseBody
}

// ruleLister is the interface for listing rules.
type ruleLister interface {
	ListRules(ctx context.Context, ownerID uuid.UUID) ([]*recurring.Rule, error)
}

// ListRulesHandler handles GET /v1/recurring.
type ListRulesHandler struct {
	RecurringService ruleLister
}

// NewListRulesHandler creates a new ListRulesHandler.
func NewListRulesHandler(svc ruleLister) *ListRulesHandler {
	return &ListRulesHandler{RecurringService: svc}
}

// Register registers the list rules endpoint with the Huma API.
func (h *ListRulesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-recurring-rules",
		Method:      http.MethodGet,
		Path:        "/v1/recurring",
		Summary:     "List recurring rules",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *ListRulesHandler) handle(ctx context.Context, input *ListRulesInput) (*ListRulesOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	rules, err := h.RecurringService.ListRules(ctx, ownerID)
	if err != nil {
		return nil, apierror.Map(err, "failed to list recurring rules")
	}

	resp := ListRulesResponseBody{Rules: make([]Rule, len(rules))}
	for i, r := range rules {
		resp.Rules[i] = toAPI(r)
	}
	return &ListRulesOutput{Body: resp}, nil
}
