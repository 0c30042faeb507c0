package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// TrendsOutput is the Huma output for the category trend report.
type TrendsOutput struct {
	Body struct {
		Trends []MonthlyTrend `json:"trends" doc:"One entry per month of the period"`
	}
}

type trendReporter interface {
	CategoryTrends(ctx context.Context, start, end time.Time, categories []string) (*service.CategoryTrends, error)
}

// TrendsHandler handles GET /v1/report/category-trends.
type TrendsHandler struct {
	ReportService trendReporter
}

func NewTrendsHandler(svc trendReporter) *TrendsHandler {
	return &TrendsHandler{ReportService: svc}
}

func (h *TrendsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-category-trends",
		Method:      http.MethodGet,
		Path:        "/v1/report/category-trends",
		Summary:     "Category amounts per month",
		Description: "Every month of the period lists every category seen in it, zero when unused that month.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *TrendsHandler) handle(ctx context.Context, input *RangeInput) (*TrendsOutput, error) {
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	trends, err := h.ReportService.CategoryTrends(ctx, start, end, input.Categories)
	if err != nil {
		return nil, apierror.From(err, "failed to build category trends")
	}

	out := &TrendsOutput{}
	out.Body.Trends = make([]MonthlyTrend, len(trends.Trends))
	for i, trend := range trends.Trends {
		out.Body.Trends[i] = MonthlyTrend{
			Month:      trend.Month,
			Categories: fixedAmounts(trend.Categories),
		}
	}
	return out, nil
}
