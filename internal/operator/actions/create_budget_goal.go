package actions

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
)

// CreateBudgetGoal inserts a goal with zero current spending.
type CreateBudgetGoal struct {
	GoalName   string
	Amount     decimal.Decimal
	TimePeriod string

	Created *budgetgoal.BudgetGoal
}

func (c *CreateBudgetGoal) Name() string {
	return "create_budget_goal"
}

func (c *CreateBudgetGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.BudgetGoals.Insert(ctx, &budgetgoal.BudgetGoalCreate{
		Name:            c.GoalName,
		Amount:          c.Amount,
		TimePeriod:      c.TimePeriod,
		CurrentSpending: decimal.Zero,
	})
	if err != nil {
		return fmt.Errorf("insert budget goal: %w", err)
	}

	c.Created, err = writer.BudgetGoals.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload budget goal: %w", err)
	}
	if c.Created == nil {
		return fmt.Errorf("budget goal %s missing after insert", id)
	}
	return nil
}
