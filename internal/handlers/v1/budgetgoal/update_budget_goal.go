package budgetgoal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// UpdateBudgetGoalBody replaces every field of a goal, current spending
// included.
type UpdateBudgetGoalBody struct {
	Name            string `json:"name,omitempty" doc:"Goal name"`
	Amount          string `json:"amount" doc:"Decimal spending limit"`
	TimePeriod      string `json:"timePeriod" doc:"Period label"`
	CurrentSpending string `json:"currentSpending" doc:"Decimal current spending, stored as given"`
}

// UpdateBudgetGoalInput is the Huma input for updating a budget goal.
type UpdateBudgetGoalInput struct {
	BudgetGoalPath
	Body UpdateBudgetGoalBody
}

type budgetGoalUpdater interface {
	UpdateGoal(ctx context.Context, id uuid.UUID, update service.BudgetGoalUpdate) (*service.BudgetGoal, error)
}

// UpdateBudgetGoalHandler handles PUT /v1/budget-goal/{id}.
type UpdateBudgetGoalHandler struct {
	BudgetGoalService budgetGoalUpdater
}

func NewUpdateBudgetGoalHandler(svc budgetGoalUpdater) *UpdateBudgetGoalHandler {
	return &UpdateBudgetGoalHandler{BudgetGoalService: svc}
}

func (h *UpdateBudgetGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget-goal",
		Method:      http.MethodPut,
		Path:        "/v1/budget-goal/{id}",
		Summary:     "Update budget goal",
		Description: "Overwrites every field of a budget goal, current spending included.",
		Tags:        []string{"Budget Goals"},
	}, h.handle)
}

func (h *UpdateBudgetGoalHandler) handle(ctx context.Context, input *UpdateBudgetGoalInput) (*BudgetGoalOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	spending, err := parseAmount("currentSpending", input.Body.CurrentSpending)
	if err != nil {
		return nil, err
	}

	updated, err := h.BudgetGoalService.UpdateGoal(ctx, id, service.BudgetGoalUpdate{
		Name:            input.Body.Name,
		Amount:          amount,
		TimePeriod:      input.Body.TimePeriod,
		CurrentSpending: spending,
	})
	if err != nil {
		return nil, apierror.From(err, "failed to update budget goal")
	}

	return &BudgetGoalOutput{Body: toResponse(*updated)}, nil
}
