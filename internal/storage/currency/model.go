package currency

import "context"

// Currency is an entry in the canonical currency registry. The code is the
// primary key; name and symbol are cosmetic.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

// ICurrencyTable defines the interface for currency storage operations.
//
//go:generate mockery --name ICurrencyTable --output mock_ICurrencyTable.go
type ICurrencyTable interface {
	FindByCode(ctx context.Context, code string) (*Currency, error)
	List(ctx context.Context) ([]*Currency, error)
}
