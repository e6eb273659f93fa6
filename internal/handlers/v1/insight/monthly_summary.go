package insight

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/storage/insight"
)

// MonthlySummaryBody is the request body for generating a monthly summary.
type MonthlySummaryBody struct {
	Month    string `json:"month" required:"true" doc:"Month to summarize, YYYY-MM"`
	Language string `json:"language,omitempty" doc:"BCP 47 language code, defaults to en"`
	Force    bool   `json:"force,omitempty" doc:"Regenerate even if a summary already exists"`
}

// MonthlySummaryInput is the Huma input for generating a monthly summary.
type MonthlySummaryInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    MonthlySummaryBody
}

// MonthlySummaryResponseBody is the response body for a monthly summary.
type MonthlySummaryResponseBody struct {
	Month     string         `json:"month" doc:"Summarized month"`
	Language  string         `json:"language" doc:"Language of the summary"`
	Content   string         `json:"content" doc:"Generated prose summary"`
	Meta      map[string]any `json:"meta" doc:"Figures the summary was generated from, plus the provider"`
	CreatedAt string         `json:"createdAt" doc:"RFC3339 generation time"`
}

// MonthlySummaryOutput is the Huma output for a monthly summary.
type MonthlySummaryOutput struct {
	Body MonthlySummaryResponseBody
}

// summaryGenerator is the interface for generating monthly summaries.
type summaryGenerator interface {
	GenerateMonthlySummary(ctx context.Context, ownerID uuid.UUID, month, language string, force bool) (*insight.Insight, error)
}

// MonthlySummaryHandler handles POST /v1/insights/monthly-summary.
type MonthlySummaryHandler struct {
	InsightService summaryGenerator
}

// NewMonthlySummaryHandler creates a new MonthlySummaryHandler.
func NewMonthlySummaryHandler(svc summaryGenerator) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{InsightService: svc}
}

// Register registers the monthly summary endpoint with the Huma API.
func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-monthly-summary",
		Method:      http.MethodPost,
		Path:        "/v1/insights/monthly-summary",
		Summary:     "Generate monthly summary",
		Description: "Builds the month's statistics and renders a prose summary, cached per owner, month and language.",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	summary, err := h.InsightService.GenerateMonthlySummary(ctx, ownerID, input.Body.Month, input.Body.Language, input.Body.Force)
	if err != nil {
		return nil, apierror.Map(err, "failed to generate monthly summary")
	}

	return &MonthlySummaryOutput{Body: MonthlySummaryResponseBody{
		Month:     summary.Month,
		Language:  summary.Language,
		Content:   summary.Content,
		Meta:      summary.Meta,
		CreatedAt: summary.CreatedAt.Format(time.RFC3339),
	}}, nil
}
