package currency

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/storage/currency"
)

// Currency is the API response model for a registry entry.
type Currency struct {
	Code   string `json:"code" doc:"ISO 4217 currency code"`
	Name   string `json:"name" doc:"Display name"`
	Symbol string `json:"symbol" doc:"Display symbol"`
}

// ListCurrenciesInput is the Huma input for listing currencies.
type ListCurrenciesInput struct{}

// ListCurrenciesResponseBody is the response body for listing currencies.
type ListCurrenciesResponseBody struct {
	Currencies []Currency `json:"currencies" doc:"Every currency the ledger accepts"`
}

// ListCurrenciesOutput is the Huma output for listing currencies.
type ListCurrenciesOutput struct {
	Body ListCurrenciesResponseBody
}

// currencyLister is the interface for listing currencies.
type currencyLister interface {
	ListCurrencies(ctx context.Context) ([]*currency.Currency, error)
}

// ListCurrenciesHandler handles GET /v1/currencies.
type ListCurrenciesHandler struct {
	CurrencyService currencyLister
}

// NewListCurrenciesHandler creates a new ListCurrenciesHandler.
func NewListCurrenciesHandler(svc currencyLister) *ListCurrenciesHandler {
	return &ListCurrenciesHandler{CurrencyService: svc}
}

// Register registers the list currencies endpoint with the Huma API.
func (h *ListCurrenciesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-currencies",
		Method:      http.MethodGet,
		Path:        "/v1/currencies",
		Summary:     "List currencies",
		Tags:        []string{"Currencies"},
	}, h.handle)
}

func (h *ListCurrenciesHandler) handle(ctx context.Context, _ *ListCurrenciesInput) (*ListCurrenciesOutput, error) {
	currencies, err := h.CurrencyService.ListCurrencies(ctx)
	if err != nil {
		return nil, apierror.Map(err, "failed to list currencies")
	}

	resp := ListCurrenciesResponseBody{Currencies: make([]Currency, len(currencies))}
	for i, c := range currencies {
		resp.Currencies[i] = Currency{Code: c.Code, Name: c.Name, Symbol: c.Symbol}
	}
	return &ListCurrenciesOutput{Body: resp}, nil
}
