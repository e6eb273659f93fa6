package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/recurring"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
)

// CreateRuleBody is the request body for creating a recurring rule.
type CreateRuleBody struct {
	WalletID   string `json:"walletID" required:"true" doc:"Wallet UUID"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID"`
	Type       string `json:"type" required:"true" enum:"expense,income" doc:"Type of the generated transactions"`
	Amount     string `json:"amount" required:"true" doc:"Decimal amount in the wallet currency"`
	Merchant   string `json:"merchant,omitempty" doc:"Merchant applied to generated transactions"`
	Note       string `json:"note,omitempty" doc:"Note applied to generated transactions"`
	Frequency  string `json:"frequency" required:"true" enum:"daily,weekly,monthly" doc:"Run frequency"`
	Interval   int    `json:"interval,omitempty" minimum:"1" doc:"Periods between runs, defaults to 1"`
	StartDate  string `json:"startDate" required:"true" doc:"First run date, YYYY-MM-DD"`
	EndDate    string `json:"endDate,omitempty" doc:"Last run date, YYYY-MM-DD"`
}

// CreateRuleInput is the Huma input for creating a recurring rule.
type CreateRuleInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    CreateRuleBody
}

// CreateRuleOutput is the Huma output for creating a recurring rule.
type CreateRuleOutput struct {
	Body Rule
}

// ruleCreator is the interface for creating rules.
type ruleCreator interface {
	CreateRule(ctx context.Context, ownerID uuid.UUID, in service.CreateRuleInput) (*recurring.Rule, error)
}

// CreateRuleHandler handles POST /v1/recurring.
type CreateRuleHandler struct {
	RecurringService ruleCreator
}

// NewCreateRuleHandler creates a new CreateRuleHandler.
func NewCreateRuleHandler(svc ruleCreator) *CreateRuleHandler {
	return &CreateRuleHandler{RecurringService: svc}
}

// Register registers the create rule endpoint with the Huma API.
func (h *CreateRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-recurring-rule",
		Method:        http.MethodPost,
		Path:          "/v1/recurring",
		Summary:       "Create recurring rule",
		Description:   "Creates a template that generates transactions on a schedule.",
		Tags:          []string{"Recurring"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateRuleHandler) handle(ctx context.Context, input *CreateRuleInput) (*CreateRuleOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	walletID, err := uuid.FromString(input.Body.WalletID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid walletID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	startDate, err := time.Parse(dateLayout, input.Body.StartDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}

	interval := input.Body.Interval
	if interval == 0 {
		interval = 1
	}

	in := service.CreateRuleInput{
		WalletID:  walletID,
		Type:      transaction.TxType(input.Body.Type),
		Amount:    amount,
		Merchant:  input.Body.Merchant,
		Note:      input.Body.Note,
		Frequency: recurring.Frequency(input.Body.Frequency),
		Interval:  interval,
		StartDate: startDate,
	}
	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		in.CategoryID = &categoryID
	}
	if input.Body.EndDate != "" {
		endDate, err := time.Parse(dateLayout, input.Body.EndDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		in.EndDate = &endDate
	}

	created, err := h.RecurringService.CreateRule(ctx, ownerID, in)
	if err != nil {
		return nil, apierror.Map(err, "failed to create recurring rule")
	}

	return &CreateRuleOutput{Body: toAPI(created)}, nil
}
