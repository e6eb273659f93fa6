package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/logging"
	"github.com/satang-labs/ledger-server/internal/service"
)

// RunDueBody is the request body for a due scan.
type RunDueBody struct {
	AsOf string `json:"asOf,omitempty" doc:"RFC3339 scan time, defaults to now"`
}

// RunDueInput is the Huma input for a due scan.
type RunDueInput struct {
	Body RunDueBody
}

// RunDueResponseBody is the response body for a due scan.
type RunDueResponseBody struct {
	Executed    int `json:"executed" doc:"Cycles materialized into transactions"`
	Deactivated int `json:"deactivated" doc:"Rules retired for passing their end date"`
	Skipped     int `json:"skipped" doc:"Cycles claimed by a concurrent scan"`
	Failed      int `json:"failed" doc:"Rules whose current cycle failed"`
}

// RunDueOutput is the Huma output for a due scan.
type RunDueOutput struct {
	Body RunDueResponseBody
}

// dueRunner is the interface for the due scan.
type dueRunner interface {
	RunDue(ctx context.Context, asOf time.Time) (*service.RunDueReport, error)
}

// RunDueHandler handles POST /v1/recurring/run. The endpoint is invoked by
// the scheduler, not by end users, so it takes no X-User-ID header.
type RunDueHandler struct {
	RecurringService dueRunner
}

// NewRunDueHandler creates a new RunDueHandler.
func NewRunDueHandler(svc dueRunner) *RunDueHandler {
	return &RunDueHandler{RecurringService: svc}
}

// Register registers the due scan endpoint with the Huma API.
func (h *RunDueHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-due-recurring",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/run",
		Summary:     "Run due recurring rules",
		Description: "Materializes the current due cycle of every active rule, one cycle per rule per call. Safe to call concurrently.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *RunDueHandler) handle(ctx context.Context, input *RunDueInput) (*RunDueOutput, error) {
	var asOf time.Time
	if input.Body.AsOf != "" {
		parsed, err := time.Parse(time.RFC3339, input.Body.AsOf)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid asOf", err)
		}
		asOf = parsed
	}

	report, err := h.RecurringService.RunDue(ctx, asOf)
	if err != nil {
		return nil, apierror.Map(err, "due scan failed")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("executed", report.Executed)
		logData.AddData("failed", report.Failed)
	}

	return &RunDueOutput{Body: RunDueResponseBody{
		Executed:    report.Executed,
		Deactivated: report.Deactivated,
		Skipped:     report.Skipped,
		Failed:      report.Failed,
	}}, nil
}
