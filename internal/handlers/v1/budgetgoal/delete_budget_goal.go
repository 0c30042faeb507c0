package budgetgoal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/logging"
)

type budgetGoalDeleter interface {
	DeleteGoal(ctx context.Context, id uuid.UUID) (int, error)
}

// DeleteBudgetGoalHandler handles DELETE /v1/budget-goal/{id}.
type DeleteBudgetGoalHandler struct {
	BudgetGoalService budgetGoalDeleter
}

func NewDeleteBudgetGoalHandler(svc budgetGoalDeleter) *DeleteBudgetGoalHandler {
	return &DeleteBudgetGoalHandler{BudgetGoalService: svc}
}

func (h *DeleteBudgetGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget-goal",
		Method:        http.MethodDelete,
		Path:          "/v1/budget-goal/{id}",
		Summary:       "Delete budget goal",
		Description:   "Unlinks the goal's transactions, keeping them, and deletes the goal.",
		Tags:          []string{"Budget Goals"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteBudgetGoalHandler) handle(ctx context.Context, input *BudgetGoalPath) (*struct{}, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	unlinked, err := h.BudgetGoalService.DeleteGoal(ctx, id)
	if err != nil {
		return nil, apierror.From(err, "failed to delete budget goal")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("unlinkedTransactions", unlinked)
	}

	return nil, nil
}
