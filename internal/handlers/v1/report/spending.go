package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// SpendingOutput is the Huma output for the spending report.
type SpendingOutput struct {
	Body SpendingReport
}

type spendingReporter interface {
	MonthlySpending(ctx context.Context, start, end time.Time, categories []string) (*service.MonthlyReport, error)
}

// SpendingHandler handles GET /v1/report/monthly-spending.
type SpendingHandler struct {
	ReportService spendingReporter
}

func NewSpendingHandler(svc spendingReporter) *SpendingHandler {
	return &SpendingHandler{ReportService: svc}
}

func (h *SpendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-monthly-spending",
		Method:      http.MethodGet,
		Path:        "/v1/report/monthly-spending",
		Summary:     "Spending by category",
		Description: "Sums the period's expenses per category with each category's share of the total.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *SpendingHandler) handle(ctx context.Context, input *RangeInput) (*SpendingOutput, error) {
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	report, err := h.ReportService.MonthlySpending(ctx, start, end, input.Categories)
	if err != nil {
		return nil, apierror.From(err, "failed to build spending report")
	}

	return &SpendingOutput{Body: toSpendingReport(*report)}, nil
}
