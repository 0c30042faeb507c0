package budgetgoal

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// BudgetGoal is the API response model for a budget goal.
type BudgetGoal struct {
	ID              string `json:"id" doc:"Budget goal UUID"`
	Name            string `json:"name" doc:"Goal name"`
	Amount          string `json:"amount" doc:"Decimal spending limit"`
	TimePeriod      string `json:"timePeriod" doc:"Period label, such as MONTHLY"`
	CurrentSpending string `json:"currentSpending" doc:"Decimal sum of linked expenses recorded so far"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

// BudgetGoalOutput is the Huma output for a single budget goal.
type BudgetGoalOutput struct {
	Body BudgetGoal
}

// BudgetGoalPath identifies a budget goal in the URL.
type BudgetGoalPath struct {
	ID string `path:"id" format:"uuid" doc:"Budget goal UUID"`
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}

func toResponse(goal service.BudgetGoal) BudgetGoal {
	return BudgetGoal{
		ID:              goal.ID.String(),
		Name:            goal.Name,
		Amount:          goal.Amount.String(),
		TimePeriod:      goal.TimePeriod,
		CurrentSpending: goal.CurrentSpending.String(),
		CreatedAt:       goal.CreatedAt.Format(time.RFC3339),
	}
}
