package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
)

// SuggestCategoryOutput is the Huma output for a category suggestion.
type SuggestCategoryOutput struct {
	Body struct {
		Category string `json:"category" doc:"Suggested category name, lowercase"`
	}
}

type transactionCategorySuggester interface {
	SuggestForTransaction(ctx context.Context, transactionID uuid.UUID) (string, error)
}

// SuggestCategoryHandler handles GET /v1/transaction/{id}/suggest-category.
type SuggestCategoryHandler struct {
	CategoryService transactionCategorySuggester
}

func NewSuggestCategoryHandler(svc transactionCategorySuggester) *SuggestCategoryHandler {
	return &SuggestCategoryHandler{CategoryService: svc}
}

func (h *SuggestCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest-transaction-category",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}/suggest-category",
		Summary:     "Suggest a category for a transaction",
		Description: "Suggests a category from the transaction's description. Falls back to \"other\".",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *SuggestCategoryHandler) handle(ctx context.Context, input *TransactionPath) (*SuggestCategoryOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	category, err := h.CategoryService.SuggestForTransaction(ctx, id)
	if err != nil {
		return nil, apierror.From(err, "failed to suggest category")
	}

	out := &SuggestCategoryOutput{}
	out.Body.Category = category
	return out, nil
}
