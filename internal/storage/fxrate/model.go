package fxrate

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Rate says: on Date, 1 unit of Base = Rate units of Quote. Unique per
// (date, base, quote). Rates for past dates are effectively immutable once a
// transaction has snapshotted them.
type Rate struct {
	ID    uuid.UUID
	Date  time.Time
	Base  string
	Quote string
	Rate  decimal.Decimal
}

// RateCreate is the input for recording a rate.
type RateCreate struct {
	Date  time.Time
	Base  string
	Quote string
	Rate  decimal.Decimal
}

// IFxRateTable defines the interface for rate lookups.
//
//go:generate mockery --name IFxRateTable --output mock_IFxRateTable.go
type IFxRateTable interface {
	Find(ctx context.Context, on time.Time, base, quote string) (*Rate, error)
}

// IWriter defines rate write operations.
type IWriter interface {
	Insert(ctx context.Context, create *RateCreate) (*Rate, error)
}
