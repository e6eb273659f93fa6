package wallet

import (
	"time"

	"github.com/satang-labs/ledger-server/internal/storage/wallet"
)

// Wallet is the API response model for a wallet.
type Wallet struct {
	ID             string `json:"id" doc:"Wallet UUID"`
	Name           string `json:"name" doc:"Display name"`
	Type           string `json:"type" doc:"cash, bank, credit or ewallet"`
	Currency       string `json:"currency" doc:"Fixed wallet currency code"`
	OpeningBalance string `json:"openingBalance" doc:"Balance at creation, in the wallet currency"`
	IsActive       bool   `json:"isActive" doc:"Whether the wallet accepts new transactions"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAPI(w *wallet.Wallet) Wallet {
	return Wallet{
		ID:             w.ID.String(),
		Name:           w.Name,
		Type:           string(w.Type),
		Currency:       w.Currency,
		OpeningBalance: w.OpeningBalance.String(),
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
}
