package budgetgoal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type budgetGoalGetter interface {
	GetGoal(ctx context.Context, id uuid.UUID) (*service.BudgetGoal, error)
}

// GetBudgetGoalHandler handles GET /v1/budget-goal/{id}.
type GetBudgetGoalHandler struct {
	BudgetGoalService budgetGoalGetter
}

func NewGetBudgetGoalHandler(svc budgetGoalGetter) *GetBudgetGoalHandler {
	return &GetBudgetGoalHandler{BudgetGoalService: svc}
}

func (h *GetBudgetGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget-goal",
		Method:      http.MethodGet,
		Path:        "/v1/budget-goal/{id}",
		Summary:     "Get budget goal",
		Tags:        []string{"Budget Goals"},
	}, h.handle)
}

func (h *GetBudgetGoalHandler) handle(ctx context.Context, input *BudgetGoalPath) (*BudgetGoalOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	goal, err := h.BudgetGoalService.GetGoal(ctx, id)
	if err != nil {
		return nil, apierror.From(err, "failed to get budget goal")
	}

	return &BudgetGoalOutput{Body: toResponse(*goal)}, nil
}
