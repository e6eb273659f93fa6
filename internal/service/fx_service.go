package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/operator/actions"
	"github.com/satang-labs/ledger-server/internal/storage/db"
	"github.com/satang-labs/ledger-server/internal/storage/fxrate"
)

// minRate is the smallest representable rate. Rates below it would round to
// zero in the NUMERIC(18,8) column.
var minRate = decimal.New(1, -8)

var one = decimal.NewFromInt(1)

// FxService resolves conversion rates for an exact date. There is no
// nearest-date interpolation; callers needing an approximate rate must seed
// one explicitly.
type FxService struct {
	rates fxrate.IFxRateTable
	ops   Processor
}

func NewFxService(rates fxrate.IFxRateTable, ops Processor) *FxService {
	return &FxService{rates: rates, ops: ops}
}

// Resolve returns the rate converting from -> to on the given date.
// Identical currencies short-circuit to exactly 1 with no lookup. A stored
// direct rate is returned verbatim; otherwise the inverse pair is tried and
// reciprocated at full decimal precision. Rounding happens only when a
// monetary base amount is produced, never on the rate itself.
func (s *FxService) Resolve(ctx context.Context, on time.Time, from, to string) (decimal.Decimal, error) {
	if from == to {
		return one, nil
	}

	direct, err := s.rates.Find(ctx, on, from, to)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return decimal.Decimal{}, err
	}

	inverse, err := s.rates.Find(ctx, on, to, from)
	if err == nil {
		return one.Div(inverse.Rate), nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return decimal.Decimal{}, err
	}

	return decimal.Decimal{}, &FxRateMissingError{Date: on, From: from, To: to}
}

// CreateRateInput is the input for recording a daily rate.
type CreateRateInput struct {
	Date  time.Time
	Base  string
	Quote string
	Rate  decimal.Decimal
}

func (s *FxService) CreateRate(ctx context.Context, in CreateRateInput) (*fxrate.Rate, error) {
	v := &validator{}
	v.checkf(len(in.Base) == 3, "base must be a 3-letter currency code")
	v.checkf(len(in.Quote) == 3, "quote must be a 3-letter currency code")
	v.checkf(in.Base != in.Quote, "base and quote must be different")
	v.checkf(!in.Date.IsZero(), "date is required")
	v.checkf(in.Rate.GreaterThanOrEqual(minRate), "rate must be at least 0.00000001")
	if err := v.err(); err != nil {
		return nil, err
	}

	act := &actions.CreateFxRate{
		Create: fxrate.RateCreate{
			Date:  dateOf(in.Date),
			Base:  in.Base,
			Quote: in.Quote,
			Rate:  in.Rate,
		},
	}
	if err := s.ops.Process(ctx, act); err != nil {
		return nil, err
	}
	return act.Result, nil
}
