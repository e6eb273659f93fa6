package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
// There is no currency field: the wallet's currency always applies.
type CreateTransactionBody struct {
	WalletID   string `json:"walletID" required:"true" doc:"Wallet UUID"`
	Type       string `json:"type" required:"true" enum:"expense,income" doc:"Transaction type"`
	Amount     string `json:"amount" required:"true" doc:"Decimal amount in the wallet currency"`
	OccurredAt string `json:"occurredAt,omitempty" doc:"RFC3339 occurrence time, defaults to now"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID"`
	Merchant   string `json:"merchant,omitempty" doc:"Merchant or payee"`
	Note       string `json:"note,omitempty" doc:"Free-form note"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

// transactionCreator is the interface for creating single transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, ownerID uuid.UUID, in service.CreateTransactionInput) (*transaction.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	LedgerService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{LedgerService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Create transaction",
		Description:   "Records an expense or income against a wallet, converted to the owner's base currency.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (uuid.UUID, *service.CreateTransactionInput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return uuid.Nil, nil, err
	}

	walletID, err := uuid.FromString(input.Body.WalletID)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid walletID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	in := &service.CreateTransactionInput{
		WalletID: walletID,
		Type:     transaction.TxType(input.Body.Type),
		Amount:   amount,
		Merchant: input.Body.Merchant,
		Note:     input.Body.Note,
	}

	if input.Body.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, input.Body.OccurredAt)
		if err != nil {
			return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid occurredAt", err)
		}
		in.OccurredAt = occurredAt
	}
	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		in.CategoryID = &categoryID
	}

	return ownerID, in, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	ownerID, in, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	tx, err := h.LedgerService.CreateTransaction(ctx, ownerID, *in)
	if err != nil {
		return nil, apierror.Map(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{Body: toAPI(tx)}, nil
}
