package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// DateRangeInput is the Huma input for listing transactions in a date range.
type DateRangeInput struct {
	StartDate string `query:"startDate" doc:"First day of the range (2006-01-02), inclusive"`
	EndDate   string `query:"endDate" doc:"Last day of the range (2006-01-02), inclusive"`
}

type transactionRangeLister interface {
	GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]service.Transaction, error)
}

// DateRangeHandler handles GET /v1/transaction/date-range.
type DateRangeHandler struct {
	TransactionService transactionRangeLister
}

func NewDateRangeHandler(svc transactionRangeLister) *DateRangeHandler {
	return &DateRangeHandler{TransactionService: svc}
}

func (h *DateRangeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions-by-date-range",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/date-range",
		Summary:     "List transactions in a date range",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DateRangeHandler) handle(ctx context.Context, input *DateRangeInput) (*ListTransactionsOutput, error) {
	start, err := apierror.ParseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := apierror.ParseDate("endDate", input.EndDate)
	if err != nil {
		return nil, err
	}

	transactions, err := h.TransactionService.GetTransactionsByDateRange(ctx, start, end)
	if err != nil {
		return nil, apierror.From(err, "failed to list transactions")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	return &ListTransactionsOutput{
		Body: ListTransactionsResponseBody{Transactions: toResponses(transactions)},
	}, nil
}
