package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
)

// DeleteTransactionInput is the Huma input for soft-deleting a transaction.
type DeleteTransactionInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	ID      string `path:"id" doc:"Transaction UUID"`
}

// DeleteTransactionOutput is the Huma output for soft-deleting a transaction.
type DeleteTransactionOutput struct {
	Status int
}

// transactionDeleter is the interface for soft-deleting transactions and
// transfers.
type transactionDeleter interface {
	SoftDeleteTransaction(ctx context.Context, ownerID, txID uuid.UUID) error
	DeleteTransfer(ctx context.Context, ownerID, linkID uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{id}.
type DeleteTransactionHandler struct {
	LedgerService transactionDeleter
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{LedgerService: svc}
}

// Register registers the delete endpoints with the Huma API. Transfer legs
// are rejected by the transaction endpoint; the transfer endpoint removes
// both legs together.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transactions/{id}",
		Summary:       "Delete transaction",
		Description:   "Soft deletes an expense or income transaction.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleTransaction)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transfer",
		Method:        http.MethodDelete,
		Path:          "/v1/transfers/{id}",
		Summary:       "Delete transfer",
		Description:   "Soft deletes both legs of a transfer atomically.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleTransfer)
}

func (h *DeleteTransactionHandler) handleTransaction(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	txID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	if err := h.LedgerService.SoftDeleteTransaction(ctx, ownerID, txID); err != nil {
		return nil, apierror.Map(err, "failed to delete transaction")
	}
	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}

func (h *DeleteTransactionHandler) handleTransfer(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	linkID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transfer id", err)
	}

	if err := h.LedgerService.DeleteTransfer(ctx, ownerID, linkID); err != nil {
		return nil, apierror.Map(err, "failed to delete transfer")
	}
	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
