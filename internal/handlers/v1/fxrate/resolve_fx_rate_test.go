package fxrate

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/satang-labs/ledger-server/internal/service"
)

type mockRateResolver struct {
	mock.Mock
}

func (m *mockRateResolver) Resolve(ctx context.Context, on time.Time, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, on, from, to)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func newResolveTestAPI(t *testing.T, svc rateResolver) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewResolveFxRateHandler(svc).Register(api)
	return api
}

func TestHTTP_ResolveFxRate_Success(t *testing.T) {
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	mockSvc := new(mockRateResolver)
	mockSvc.On("Resolve", mock.Anything, date, "USD", "THB").
		Return(decimal.RequireFromString("35.50"), nil)

	resp := newResolveTestAPI(t, mockSvc).
		Get("/v1/fx-rates/resolve?date=2025-07-14&from=USD&to=THB")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ResolveFxRateResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2025-07-14", body.Date)
	assert.Equal(t, "USD", body.From)
	assert.Equal(t, "THB", body.To)
	assert.Equal(t, "35.5", body.Rate)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ResolveFxRate_InvalidDate(t *testing.T) {
	mockSvc := new(mockRateResolver)

	resp := newResolveTestAPI(t, mockSvc).
		Get("/v1/fx-rates/resolve?date=14-07-2025&from=USD&to=THB")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Resolve")
}

func TestHTTP_ResolveFxRate_MissingPairMapsTo422(t *testing.T) {
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	mockSvc := new(mockRateResolver)
	mockSvc.On("Resolve", mock.Anything, date, "USD", "THB").
		Return(decimal.Zero, &service.FxRateMissingError{Date: date, From: "USD", To: "THB"})

	resp := newResolveTestAPI(t, mockSvc).
		Get("/v1/fx-rates/resolve?date=2025-07-14&from=USD&to=THB")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertExpectations(t)
}
