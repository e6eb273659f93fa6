package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/budget"
)

type mockStatusReporter struct {
	mock.Mock
}

func (m *mockStatusReporter) GetStatus(ctx context.Context, ownerID uuid.UUID, month string) ([]*service.BudgetStatus, error) {
	args := m.Called(ctx, ownerID, month)
	statuses, _ := args.Get(0).([]*service.BudgetStatus)
	return statuses, args.Error(1)
}

func newStatusTestAPI(t *testing.T, svc statusReporter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewBudgetStatusHandler(svc).Register(api)
	return api
}

func TestHTTP_BudgetStatus_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	categoryName := "Dining"
	categoryID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockStatusReporter)
	mockSvc.On("GetStatus", mock.Anything, ownerID, "2025-07").
		Return([]*service.BudgetStatus{{
			Budget: &budget.Budget{
				ID:              uuid.Must(uuid.NewV4()),
				OwnerID:         ownerID,
				Month:           "2025-07",
				Scope:           budget.ScopeCategory,
				CategoryID:      &categoryID,
				CategoryName:    &categoryName,
				LimitBaseAmount: decimal.RequireFromString("300.00"),
			},
			Spent:        decimal.RequireFromString("450.00"),
			Remaining:    decimal.RequireFromString("-150.00"),
			PercentUsed:  decimal.RequireFromString("150.00"),
			BaseCurrency: "THB",
		}}, nil)

	resp := newStatusTestAPI(t, mockSvc).Get("/v1/budgets/2025-07/status",
		"X-User-ID: "+ownerID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BudgetStatusResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2025-07", body.Month)
	assert.Equal(t, "THB", body.BaseCurrency)
	assert.Len(t, body.Budgets, 1)
	assert.Equal(t, "450", body.Budgets[0].Spent)
	assert.Equal(t, "-150", body.Budgets[0].Remaining)
	assert.Equal(t, "150", body.Budgets[0].PercentUsed)
	assert.Equal(t, "Dining", *body.Budgets[0].Budget.CategoryName)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_BudgetStatus_BadMonthMapsTo422(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockStatusReporter)
	mockSvc.On("GetStatus", mock.Anything, ownerID, "bad-month").
		Return(nil, &service.ValidationError{Violations: []string{"month must be in format YYYY-MM"}})

	resp := newStatusTestAPI(t, mockSvc).Get("/v1/budgets/bad-month/status",
		"X-User-ID: "+ownerID.String())

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_BudgetStatus_BadUserHeader(t *testing.T) {
	mockSvc := new(mockStatusReporter)

	resp := newStatusTestAPI(t, mockSvc).Get("/v1/budgets/2025-07/status",
		"X-User-ID: not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "GetStatus")
}
