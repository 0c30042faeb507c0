package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

const (
	ReportTypeSpending = "spending"
	ReportTypeMonthly  = "monthly"
	ReportTypeCategory = "category"
)

// ExportPDFInput is the Huma input for exporting a report as PDF.
type ExportPDFInput struct {
	RangeInput
	ReportType string `query:"reportType" enum:"spending,monthly,category" default:"spending" doc:"Report to render"`
}

// ExportPDFOutput carries the rendered document.
type ExportPDFOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type pdfReporter interface {
	spendingReporter
	monthlyTotaler
	categoryTotaler
}

type pdfRenderer interface {
	RenderSpendingReport(report service.MonthlyReport) ([]byte, error)
	RenderTotals(title string, report service.TotalsReport) ([]byte, error)
}

// ExportPDFHandler handles GET /v1/report/export-pdf.
type ExportPDFHandler struct {
	ReportService pdfReporter
	Renderer      pdfRenderer
}

func NewExportPDFHandler(svc pdfReporter, renderer pdfRenderer) *ExportPDFHandler {
	return &ExportPDFHandler{ReportService: svc, Renderer: renderer}
}

func (h *ExportPDFHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-export-pdf",
		Method:      http.MethodGet,
		Path:        "/v1/report/export-pdf",
		Summary:     "Export a report as PDF",
		Tags:        []string{"Reports"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PDF document",
				Content:     map[string]*huma.MediaType{"application/pdf": {}},
			},
		},
	}, h.handle)
}

func (h *ExportPDFHandler) handle(ctx context.Context, input *ExportPDFInput) (*ExportPDFOutput, error) {
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	document, err := h.render(ctx, input.ReportType, start, end, input.Categories)
	if err != nil {
		return nil, err
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("reportType", input.ReportType)
		logData.AddData("pdfBytes", len(document))
	}

	filename := fmt.Sprintf("%s-report-%s-to-%s.pdf", input.ReportType, input.StartDate, input.EndDate)
	return &ExportPDFOutput{
		ContentType:        "application/pdf",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               document,
	}, nil
}

func (h *ExportPDFHandler) render(ctx context.Context, reportType string, start, end time.Time, categories []string) ([]byte, error) {
	var (
		document []byte
		err      error
	)

	switch reportType {
	case ReportTypeSpending:
		report, rErr := h.ReportService.MonthlySpending(ctx, start, end, categories)
		if rErr != nil {
			return nil, apierror.From(rErr, "failed to build spending report")
		}
		document, err = h.Renderer.RenderSpendingReport(*report)
	case ReportTypeMonthly:
		report, rErr := h.ReportService.MonthlyTotals(ctx, start, end)
		if rErr != nil {
			return nil, apierror.From(rErr, "failed to build monthly totals")
		}
		document, err = h.Renderer.RenderTotals("Monthly Totals Report", *report)
	case ReportTypeCategory:
		report, rErr := h.ReportService.CategoryTotals(ctx, start, end)
		if rErr != nil {
			return nil, apierror.From(rErr, "failed to build category totals")
		}
		document, err = h.Renderer.RenderTotals("Category Spending Report", *report)
	default:
		return nil, huma.NewError(http.StatusBadRequest, "unknown reportType "+reportType)
	}

	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to render pdf", err)
	}
	return document, nil
}
