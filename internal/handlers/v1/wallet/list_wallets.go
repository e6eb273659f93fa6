package wallet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// ListWalletsInput is the Huma input for listing wallets.
type ListWalletsInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
}

// ListWalletsResponseBody is the response body for listing wallets.
type ListWalletsResponseBody struct {
	Wallets []Wallet `json:"wallets" doc:"All of the owner's wallets"`
}

// ListWalletsOutput is the Huma output for listing wallets.
type ListWalletsOutput struct {
	Body ListWalletsResponseBody
}

// walletLister is the interface for listing wallets.
type walletLister interface {
	ListWallets(ctx context.Context, ownerID uuid.UUID) ([]*wallet.Wallet, error)
}

// ListWalletsHandler handles GET /v1/wallets.
type ListWalletsHandler struct {
	WalletService walletLister
}

// NewListWalletsHandler creates a new ListWalletsHandler.
func NewListWalletsHandler(svc walletLister) *ListWalletsHandler {
	return &ListWalletsHandler{WalletService: svc}
}

// Register registers the list wallets endpoint with the Huma API.
func (h *ListWalletsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-wallets",
		Method:      http.MethodGet,
		Path:        "/v1/wallets",
		Summary:     "List wallets",
		Tags:        []string{"Wallets"},
	}, h.handle)
}

func (h *ListWalletsHandler) handle(ctx context.Context, input *ListWalletsInput) (*ListWalletsOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	wallets, err := h.WalletService.ListWallets(ctx, ownerID)
	if err != nil {
		return nil, apierror.Map(err, "failed to list wallets")
	}

	resp := ListWalletsResponseBody{Wallets: make([]Wallet, len(wallets))}
	for i, w := range wallets {
		resp.Wallets[i] = toAPI(w)
	}
	return &ListWalletsOutput{Body: resp}, nil
}
