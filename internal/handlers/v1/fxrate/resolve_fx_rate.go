package fxrate

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
)

// ResolveFxRateInput is the Huma input for resolving a rate.
type ResolveFxRateInput struct {
	Date string `query:"date" required:"true" doc:"Rate date, YYYY-MM-DD"`
	From string `query:"from" required:"true" doc:"Source currency code"`
	To   string `query:"to" required:"true" doc:"Target currency code"`
}

// ResolveFxRateResponseBody is the response body for a resolved rate.
type ResolveFxRateResponseBody struct {
	Date string `json:"date" doc:"Rate date, YYYY-MM-DD"`
	From string `json:"from" doc:"Source currency code"`
	To   string `json:"to" doc:"Target currency code"`
	Rate string `json:"rate" doc:"Resolved rate, inverse-derived when no direct pair is stored"`
}

// ResolveFxRateOutput is the Huma output for a resolved rate.
type ResolveFxRateOutput struct {
	Body ResolveFxRateResponseBody
}

// rateResolver is the interface for resolving rates.
type rateResolver interface {
	Resolve(ctx context.Context, on time.Time, from, to string) (decimal.Decimal, error)
}

// ResolveFxRateHandler handles GET /v1/fx-rates/resolve.
type ResolveFxRateHandler struct {
	FxService rateResolver
}

// NewResolveFxRateHandler creates a new ResolveFxRateHandler.
func NewResolveFxRateHandler(svc rateResolver) *ResolveFxRateHandler {
	return &ResolveFxRateHandler{FxService: svc}
}

// Register registers the resolve endpoint with the Huma API.
func (h *ResolveFxRateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "resolve-fx-rate",
		Method:      http.MethodGet,
		Path:        "/v1/fx-rates/resolve",
		Summary:     "Resolve FX rate",
		Description: "Resolves the conversion rate for a pair and date, falling back to the inverse pair.",
		Tags:        []string{"FX Rates"},
	}, h.handle)
}

func (h *ResolveFxRateHandler) handle(ctx context.Context, input *ResolveFxRateInput) (*ResolveFxRateOutput, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	rate, err := h.FxService.Resolve(ctx, date, input.From, input.To)
	if err != nil {
		return nil, apierror.Map(err, "failed to resolve fx rate")
	}

	return &ResolveFxRateOutput{Body: ResolveFxRateResponseBody{
		Date: date.Format(dateLayout),
		From: input.From,
		To:   input.To,
		Rate: rate.String(),
	}}, nil
}
