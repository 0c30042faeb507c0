package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
)

// BudgetGoal represents a budget goal in the service layer.
type BudgetGoal struct {
	ID              uuid.UUID
	Name            string
	Amount          decimal.Decimal
	TimePeriod      string
	CurrentSpending decimal.Decimal
	CreatedAt       time.Time
}

type BudgetGoalInput struct {
	Name       string
	Amount     decimal.Decimal
	TimePeriod string
}

// BudgetGoalUpdate replaces every field of a goal, current spending included.
type BudgetGoalUpdate struct {
	Name            string
	Amount          decimal.Decimal
	TimePeriod      string
	CurrentSpending decimal.Decimal
}

// Reconciliation reports a spending recomputation.
type Reconciliation struct {
	Goal     BudgetGoal
	Previous decimal.Decimal
}

func budgetGoalFromStorage(row *budgetgoal.BudgetGoal) BudgetGoal {
	return BudgetGoal{
		ID:              row.ID,
		Name:            row.Name,
		Amount:          row.Amount,
		TimePeriod:      row.TimePeriod,
		CurrentSpending: row.CurrentSpending,
		CreatedAt:       row.CreatedAt,
	}
}
