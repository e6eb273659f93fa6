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
)

// CreateTransferBody is the request body for a wallet-to-wallet transfer.
// Amount is in the source wallet's currency; the credited amount is derived
// from the daily cross rate.
type CreateTransferBody struct {
	FromWalletID string `json:"fromWalletID" required:"true" doc:"Source wallet UUID"`
	ToWalletID   string `json:"toWalletID" required:"true" doc:"Destination wallet UUID"`
	Amount       string `json:"amount" required:"true" doc:"Decimal amount in the source wallet currency"`
	OccurredAt   string `json:"occurredAt,omitempty" doc:"RFC3339 occurrence time, defaults to now"`
	Merchant     string `json:"merchant,omitempty" doc:"Label for both legs, defaults to Transfer"`
	Note         string `json:"note,omitempty" doc:"Free-form note"`
}

// CreateTransferInput is the Huma input for creating a transfer.
type CreateTransferInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    CreateTransferBody
}

// CreateTransferResponseBody is the response body for a created transfer.
type CreateTransferResponseBody struct {
	TransferID string      `json:"transferID" doc:"Transfer link UUID"`
	OutTx      Transaction `json:"outTx" doc:"Debit leg on the source wallet"`
	InTx       Transaction `json:"inTx" doc:"Credit leg on the destination wallet"`
}

// CreateTransferOutput is the Huma output for creating a transfer.
type CreateTransferOutput struct {
	Body CreateTransferResponseBody
}

// transferCreator is the interface for creating transfers.
type transferCreator interface {
	CreateTransfer(ctx context.Context, ownerID uuid.UUID, in service.CreateTransferInput) (*service.TransferResult, error)
}

// CreateTransferHandler handles POST /v1/transfers.
type CreateTransferHandler struct {
	LedgerService transferCreator
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(svc transferCreator) *CreateTransferHandler {
	return &CreateTransferHandler{LedgerService: svc}
}

// Register registers the create transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transfer",
		Method:        http.MethodPost,
		Path:          "/v1/transfers",
		Summary:       "Create transfer",
		Description:   "Moves money between two wallets of the same owner as a linked pair of ledger rows.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	fromWalletID, err := uuid.FromString(input.Body.FromWalletID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid fromWalletID", err)
	}
	toWalletID, err := uuid.FromString(input.Body.ToWalletID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid toWalletID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	in := service.CreateTransferInput{
		FromWalletID: fromWalletID,
		ToWalletID:   toWalletID,
		Amount:       amount,
		Merchant:     input.Body.Merchant,
		Note:         input.Body.Note,
	}
	if input.Body.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, input.Body.OccurredAt)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid occurredAt", err)
		}
		in.OccurredAt = occurredAt
	}

	result, err := h.LedgerService.CreateTransfer(ctx, ownerID, in)
	if err != nil {
		return nil, apierror.Map(err, "failed to create transfer")
	}

	return &CreateTransferOutput{Body: CreateTransferResponseBody{
		TransferID: result.Link.ID.String(),
		OutTx:      toAPI(result.OutTx),
		InTx:       toAPI(result.InTx),
	}}, nil
}
