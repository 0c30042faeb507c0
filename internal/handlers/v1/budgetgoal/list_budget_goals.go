package budgetgoal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// ListBudgetGoalsOutput is the Huma output for listing budget goals.
type ListBudgetGoalsOutput struct {
	Body struct {
		BudgetGoals []BudgetGoal `json:"budgetGoals" doc:"Every budget goal"`
	}
}

type budgetGoalLister interface {
	ListGoals(ctx context.Context) ([]service.BudgetGoal, error)
}

// ListBudgetGoalsHandler handles GET /v1/budget-goal.
type ListBudgetGoalsHandler struct {
	BudgetGoalService budgetGoalLister
}

func NewListBudgetGoalsHandler(svc budgetGoalLister) *ListBudgetGoalsHandler {
	return &ListBudgetGoalsHandler{BudgetGoalService: svc}
}

func (h *ListBudgetGoalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budget-goals",
		Method:      http.MethodGet,
		Path:        "/v1/budget-goal",
		Summary:     "List budget goals",
		Tags:        []string{"Budget Goals"},
	}, h.handle)
}

func (h *ListBudgetGoalsHandler) handle(ctx context.Context, _ *struct{}) (*ListBudgetGoalsOutput, error) {
	goals, err := h.BudgetGoalService.ListGoals(ctx)
	if err != nil {
		return nil, apierror.From(err, "failed to list budget goals")
	}

	out := &ListBudgetGoalsOutput{}
	out.Body.BudgetGoals = make([]BudgetGoal, len(goals))
	for i, goal := range goals {
		out.Body.BudgetGoals[i] = toResponse(goal)
	}
	return out, nil
}
