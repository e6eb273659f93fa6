package fxrate

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/fxrate"
)

const dateLayout = "2006-01-02"

// CreateFxRateBody is the request body for recording a daily rate.
type CreateFxRateBody struct {
	Date  string `json:"date" required:"true" doc:"Rate date, YYYY-MM-DD"`
	Base  string `json:"base" required:"true" doc:"Base currency code"`
	Quote string `json:"quote" required:"true" doc:"Quote currency code"`
	Rate  string `json:"rate" required:"true" doc:"Units of quote per one unit of base"`
}

// CreateFxRateInput is the Huma input for recording a daily rate.
type CreateFxRateInput struct {
	Body CreateFxRateBody
}

// FxRate is the API response model for a stored rate.
type FxRate struct {
	Date  string `json:"date" doc:"Rate date, YYYY-MM-DD"`
	Base  string `json:"base" doc:"Base currency code"`
	Quote string `json:"quote" doc:"Quote currency code"`
	Rate  string `json:"rate" doc:"Units of quote per one unit of base"`
}

// CreateFxRateOutput is the Huma output for recording a daily rate.
type CreateFxRateOutput struct {
	Body FxRate
}

// rateCreator is the interface for recording rates.
type rateCreator interface {
	CreateRate(ctx context.Context, in service.CreateRateInput) (*fxrate.Rate, error)
}

// CreateFxRateHandler handles POST /v1/fx-rates.
type CreateFxRateHandler struct {
	FxService rateCreator
}

// NewCreateFxRateHandler creates a new CreateFxRateHandler.
func NewCreateFxRateHandler(svc rateCreator) *CreateFxRateHandler {
	return &CreateFxRateHandler{FxService: svc}
}

// Register registers the create rate endpoint with the Huma API.
func (h *CreateFxRateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-fx-rate",
		Method:        http.MethodPost,
		Path:          "/v1/fx-rates",
		Summary:       "Create FX rate",
		Description:   "Records the daily conversion rate for one currency pair.",
		Tags:          []string{"FX Rates"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateFxRateHandler) handle(ctx context.Context, input *CreateFxRateInput) (*CreateFxRateOutput, error) {
	date, err := time.Parse(dateLayout, input.Body.Date)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}
	rate, err := decimal.NewFromString(input.Body.Rate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid rate", err)
	}

	created, err := h.FxService.CreateRate(ctx, service.CreateRateInput{
		Date:  date,
		Base:  input.Body.Base,
		Quote: input.Body.Quote,
		Rate:  rate,
	})
	if err != nil {
		return nil, apierror.Map(err, "failed to create fx rate")
	}

	return &CreateFxRateOutput{Body: FxRate{
		Date:  created.Date.Format(dateLayout),
		Base:  created.Base,
		Quote: created.Quote,
		Rate:  created.Rate.String(),
	}}, nil
}
