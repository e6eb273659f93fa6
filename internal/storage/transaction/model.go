package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type TxType string

const (
	TypeExpense     TxType = "expense"
	TypeIncome      TxType = "income"
	TypeTransferOut TxType = "transfer_out"
	TypeTransferIn  TxType = "transfer_in"
)

// Transaction is a ledger row. Amount is in the wallet's currency; FxRate
// and BaseAmount are snapshots taken at creation time and never recomputed,
// so later rate corrections cannot rewrite history.
type Transaction struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	WalletID   uuid.UUID
	Type       TxType
	OccurredAt time.Time
	Amount     decimal.Decimal
	Currency   string
	FxRate     decimal.Decimal
	BaseAmount decimal.Decimal
	CategoryID *uuid.UUID
	Merchant   string
	Note       string
	IsDeleted  bool
	CreatedAt  time.Time
}

// TransactionCreate is the input for inserting a ledger row. All conversion
// fields are computed by the caller before the insert.
type TransactionCreate struct {
	OwnerID    uuid.UUID
	WalletID   uuid.UUID
	Type       TxType
	OccurredAt time.Time
	Amount     decimal.Decimal
	Currency   string
	FxRate     decimal.Decimal
	BaseAmount decimal.Decimal
	CategoryID *uuid.UUID
	Merchant   string
	Note       string
}

// TransferLink pairs one transfer_out row with one transfer_in row. It is
// only ever created together with both legs.
type TransferLink struct {
	ID        uuid.UUID
	OutTxID   uuid.UUID
	InTxID    uuid.UUID
	CreatedAt time.Time
}

// Filter narrows List results. Deleted rows are always excluded.
type Filter struct {
	OwnerID         uuid.UUID
	WalletID        *uuid.UUID
	CategoryID      *uuid.UUID
	Type            *TxType
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// SumFilter selects the rows whose base_amount is aggregated. From is
// inclusive, To exclusive. Deleted rows are always excluded.
type SumFilter struct {
	OwnerID    uuid.UUID
	Type       TxType
	From       time.Time
	To         time.Time
	CategoryID *uuid.UUID
}

// GroupTotal is one aggregation bucket (a category name or a merchant).
type GroupTotal struct {
	Label string
	Total decimal.Decimal
}

// ITransactionTable defines the interface for transaction reads.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	// FindByID retrieves a row by primary key, including soft-deleted rows,
	// so deleted transactions stay auditable.
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *Filter) ([]*Transaction, error)
	SumBaseAmount(ctx context.Context, filter *SumFilter) (decimal.Decimal, error)
	CountInRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int64, error)
	TopCategories(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]GroupTotal, error)
	TopMerchants(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit int) ([]GroupTotal, error)
	FindLinkByID(ctx context.Context, id uuid.UUID) (*TransferLink, error)
	FindLinkByTxID(ctx context.Context, txID uuid.UUID) (*TransferLink, error)
}

// IWriter defines transaction write operations, always inside a transaction.
type IWriter interface {
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	InsertLink(ctx context.Context, outTxID, inTxID uuid.UUID) (*TransferLink, error)
	SoftDelete(ctx context.Context, ids ...uuid.UUID) (int64, error)
}
