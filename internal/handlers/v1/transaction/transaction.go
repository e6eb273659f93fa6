package transaction

import (
	"time"

	"github.com/satang-labs/ledger-server/internal/storage/transaction"
)

// Transaction is the API response model for a ledger row.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID         string  `json:"id" doc:"Transaction UUID"`
	WalletID   string  `json:"walletID" doc:"Wallet UUID"`
	Type       string  `json:"type" doc:"expense, income, transfer_out or transfer_in"`
	OccurredAt string  `json:"occurredAt" doc:"RFC3339 time the transaction occurred"`
	Amount     string  `json:"amount" doc:"Decimal amount in the wallet currency"`
	Currency   string  `json:"currency" doc:"Wallet currency code"`
	FxRate     string  `json:"fxRate" doc:"Rate to the owner's base currency, snapshotted at creation"`
	BaseAmount string  `json:"baseAmount" doc:"Amount converted to the owner's base currency"`
	CategoryID *string `json:"categoryID,omitempty" doc:"Category UUID"`
	Merchant   string  `json:"merchant,omitempty" doc:"Merchant or payee"`
	Note       string  `json:"note,omitempty" doc:"Free-form note"`
	CreatedAt  string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func toAPI(tx *transaction.Transaction) Transaction {
	out := Transaction{
		ID:         tx.ID.String(),
		WalletID:   tx.WalletID.String(),
		Type:       string(tx.Type),
		OccurredAt: tx.OccurredAt.Format(time.RFC3339),
		Amount:     tx.Amount.String(),
		Currency:   tx.Currency,
		FxRate:     tx.FxRate.String(),
		BaseAmount: tx.BaseAmount.String(),
		Merchant:   tx.Merchant,
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		s := tx.CategoryID.String()
		out.CategoryID = &s
	}
	return out
}
