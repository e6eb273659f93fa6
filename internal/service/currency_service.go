package service

import (
	"context"

	"github.com/satang-labs/ledger-server/internal/storage/currency"
)

// CurrencyService exposes the read-only currency registry. Entries are
// seeded by the seed_currencies script, not through the API.
type CurrencyService struct {
	currencies currency.ICurrencyTable
}

func NewCurrencyService(currencies currency.ICurrencyTable) *CurrencyService {
	return &CurrencyService{currencies: currencies}
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]*currency.Currency, error) {
	return s.currencies.List(ctx)
}
