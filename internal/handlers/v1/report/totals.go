package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// TotalsOutput is the Huma output for month and category totals.
type TotalsOutput struct {
	Body TotalsReport
}

type monthlyTotaler interface {
	MonthlyTotals(ctx context.Context, start, end time.Time) (*service.TotalsReport, error)
}

// MonthlyTotalsHandler handles GET /v1/report/monthly.
type MonthlyTotalsHandler struct {
	ReportService monthlyTotaler
}

func NewMonthlyTotalsHandler(svc monthlyTotaler) *MonthlyTotalsHandler {
	return &MonthlyTotalsHandler{ReportService: svc}
}

func (h *MonthlyTotalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-monthly-totals",
		Method:      http.MethodGet,
		Path:        "/v1/report/monthly",
		Summary:     "Totals by month",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *MonthlyTotalsHandler) handle(ctx context.Context, input *RangeInput) (*TotalsOutput, error) {
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	report, err := h.ReportService.MonthlyTotals(ctx, start, end)
	if err != nil {
		return nil, apierror.From(err, "failed to build monthly totals")
	}

	return &TotalsOutput{Body: toTotalsReport(*report)}, nil
}

type categoryTotaler interface {
	CategoryTotals(ctx context.Context, start, end time.Time) (*service.TotalsReport, error)
}

// CategoryTotalsHandler handles GET /v1/report/category.
type CategoryTotalsHandler struct {
	ReportService categoryTotaler
}

func NewCategoryTotalsHandler(svc categoryTotaler) *CategoryTotalsHandler {
	return &CategoryTotalsHandler{ReportService: svc}
}

func (h *CategoryTotalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-category-totals",
		Method:      http.MethodGet,
		Path:        "/v1/report/category",
		Summary:     "Totals by category",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *CategoryTotalsHandler) handle(ctx context.Context, input *RangeInput) (*TotalsOutput, error) {
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	report, err := h.ReportService.CategoryTotals(ctx, start, end)
	if err != nil {
		return nil, apierror.From(err, "failed to build category totals")
	}

	return &TotalsOutput{Body: toTotalsReport(*report)}, nil
}
