package budgetgoal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// ReconcileOutput is the Huma output for a spending reconciliation.
type ReconcileOutput struct {
	Body struct {
		BudgetGoal       BudgetGoal `json:"budgetGoal" doc:"Goal with recomputed current spending"`
		PreviousSpending string     `json:"previousSpending" doc:"Current spending before the recomputation"`
	}
}

type budgetGoalReconciler interface {
	ReconcileSpending(ctx context.Context, id uuid.UUID) (*service.Reconciliation, error)
}

// ReconcileBudgetGoalHandler handles POST /v1/budget-goal/{id}/reconcile.
type ReconcileBudgetGoalHandler struct {
	BudgetGoalService budgetGoalReconciler
}

func NewReconcileBudgetGoalHandler(svc budgetGoalReconciler) *ReconcileBudgetGoalHandler {
	return &ReconcileBudgetGoalHandler{BudgetGoalService: svc}
}

func (h *ReconcileBudgetGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reconcile-budget-goal",
		Method:      http.MethodPost,
		Path:        "/v1/budget-goal/{id}/reconcile",
		Summary:     "Reconcile budget goal spending",
		Description: "Sets current spending to the sum of the expenses linked to the goal now.",
		Tags:        []string{"Budget Goals"},
	}, h.handle)
}

func (h *ReconcileBudgetGoalHandler) handle(ctx context.Context, input *BudgetGoalPath) (*ReconcileOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	result, err := h.BudgetGoalService.ReconcileSpending(ctx, id)
	if err != nil {
		return nil, apierror.From(err, "failed to reconcile budget goal")
	}

	out := &ReconcileOutput{}
	out.Body.BudgetGoal = toResponse(result.Goal)
	out.Body.PreviousSpending = result.Previous.String()
	return out, nil
}
