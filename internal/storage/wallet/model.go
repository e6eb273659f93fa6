package wallet

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type WalletType string

const (
	TypeCash    WalletType = "cash"
	TypeBank    WalletType = "bank"
	TypeCredit  WalletType = "credit"
	TypeEWallet WalletType = "ewallet"
)

// Wallet is a money container owned by exactly one user. The currency is
// fixed at creation; every transaction against the wallet inherits it.
type Wallet struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Type           WalletType
	Currency       string
	OpeningBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
}

// WalletCreate is the input for creating a new wallet.
type WalletCreate struct {
	OwnerID        uuid.UUID
	Name           string
	Type           WalletType
	Currency       string
	OpeningBalance decimal.Decimal
}

// IWalletTable defines the interface for wallet storage operations.
//
//go:generate mockery --name IWalletTable --output mock_IWalletTable.go
type IWalletTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Wallet, error)
}

// IWriter defines wallet write operations, always inside a transaction.
type IWriter interface {
	Insert(ctx context.Context, create *WalletCreate) (*Wallet, error)
}
