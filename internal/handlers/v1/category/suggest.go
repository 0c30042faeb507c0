package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// SuggestInput is the Huma input for a free-text category suggestion.
type SuggestInput struct {
	Description string `query:"description" required:"true" doc:"Transaction description to categorize"`
}

// SuggestOutput is the Huma output for a category suggestion.
type SuggestOutput struct {
	Body struct {
		Category string `json:"category" doc:"Suggested category name, lowercase"`
	}
}

type categorySuggester interface {
	Suggest(ctx context.Context, description string) string
}

// SuggestHandler handles GET /v1/category/suggest.
type SuggestHandler struct {
	CategoryService categorySuggester
}

func NewSuggestHandler(svc categorySuggester) *SuggestHandler {
	return &SuggestHandler{CategoryService: svc}
}

func (h *SuggestHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/suggest",
		Summary:     "Suggest a category",
		Description: "Suggests a category for a description. Falls back to \"other\".",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *SuggestHandler) handle(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	out := &SuggestOutput{}
	out.Body.Category = h.CategoryService.Suggest(ctx, input.Description)
	return out, nil
}
