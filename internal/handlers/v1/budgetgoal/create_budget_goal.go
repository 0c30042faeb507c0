package budgetgoal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// CreateBudgetGoalBody is the request body for creating a budget goal.
type CreateBudgetGoalBody struct {
	Name       string `json:"name,omitempty" doc:"Goal name"`
	Amount     string `json:"amount" doc:"Decimal spending limit, greater than zero"`
	TimePeriod string `json:"timePeriod" doc:"Period label, such as MONTHLY"`
}

// CreateBudgetGoalInput is the Huma input for creating a budget goal.
type CreateBudgetGoalInput struct {
	Body CreateBudgetGoalBody
}

type budgetGoalCreator interface {
	CreateGoal(ctx context.Context, input service.BudgetGoalInput) (*service.BudgetGoal, error)
}

// CreateBudgetGoalHandler handles POST /v1/budget-goal.
type CreateBudgetGoalHandler struct {
	BudgetGoalService budgetGoalCreator
}

// NewCreateBudgetGoalHandler creates a new CreateBudgetGoalHandler.
func NewCreateBudgetGoalHandler(svc budgetGoalCreator) *CreateBudgetGoalHandler {
	return &CreateBudgetGoalHandler{BudgetGoalService: svc}
}

// Register registers the create budget goal endpoint with the Huma API.
func (h *CreateBudgetGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget-goal",
		Method:        http.MethodPost,
		Path:          "/v1/budget-goal",
		Summary:       "Create budget goal",
		Description:   "Creates a budget goal with zero current spending.",
		Tags:          []string{"Budget Goals"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateBudgetGoalHandler) handle(ctx context.Context, input *CreateBudgetGoalInput) (*BudgetGoalOutput, error) {
	amount, err := parseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}

	created, err := h.BudgetGoalService.CreateGoal(ctx, service.BudgetGoalInput{
		Name:       input.Body.Name,
		Amount:     amount,
		TimePeriod: input.Body.TimePeriod,
	})
	if err != nil {
		return nil, apierror.From(err, "failed to create budget goal")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("budgetGoalID", created.ID.String())
	}

	return &BudgetGoalOutput{Body: toResponse(*created)}, nil
}
