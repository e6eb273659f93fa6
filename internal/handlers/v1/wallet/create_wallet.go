package wallet

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// CreateWalletBody is the request body for creating a wallet.
type CreateWalletBody struct {
	Name           string `json:"name" required:"true" doc:"Display name"`
	Type           string `json:"type" required:"true" enum:"cash,bank,credit,ewallet" doc:"Wallet type"`
	Currency       string `json:"currency" required:"true" doc:"3-letter currency code, fixed for the wallet's lifetime"`
	OpeningBalance string `json:"openingBalance,omitempty" doc:"Decimal opening balance, defaults to 0"`
}

// CreateWalletInput is the Huma input for creating a wallet.
type CreateWalletInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    CreateWalletBody
}

// CreateWalletOutput is the Huma output for creating a wallet.
type CreateWalletOutput struct {
	Body Wallet
}

// walletCreator is the interface for creating wallets.
type walletCreator interface {
	CreateWallet(ctx context.Context, ownerID uuid.UUID, in service.CreateWalletInput) (*wallet.Wallet, error)
}

// CreateWalletHandler handles POST /v1/wallets.
type CreateWalletHandler struct {
	WalletService walletCreator
}

// NewCreateWalletHandler creates a new CreateWalletHandler.
func NewCreateWalletHandler(svc walletCreator) *CreateWalletHandler {
	return &CreateWalletHandler{WalletService: svc}
}

// Register registers the create wallet endpoint with the Huma API.
func (h *CreateWalletHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-wallet",
		Method:        http.MethodPost,
		Path:          "/v1/wallets",
		Summary:       "Create wallet",
		Tags:          []string{"Wallets"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateWalletHandler) handle(ctx context.Context, input *CreateWalletInput) (*CreateWalletOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	openingBalance := decimal.Zero
	if input.Body.OpeningBalance != "" {
		openingBalance, err = decimal.NewFromString(input.Body.OpeningBalance)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid openingBalance", err)
		}
	}

	created, err := h.WalletService.CreateWallet(ctx, ownerID, service.CreateWalletInput{
		Name:           input.Body.Name,
		Type:           wallet.WalletType(input.Body.Type),
		Currency:       input.Body.Currency,
		OpeningBalance: openingBalance,
	})
	if err != nil {
		return nil, apierror.Map(err, "failed to create wallet")
	}

	return &CreateWalletOutput{Body: toAPI(created)}, nil
}
