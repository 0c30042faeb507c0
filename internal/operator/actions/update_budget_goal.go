package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
)

// UpdateBudgetGoal overwrites every field of a goal, current spending
// included, as given.
type UpdateBudgetGoal struct {
	ID              uuid.UUID
	GoalName        string
	Amount          decimal.Decimal
	TimePeriod      string
	CurrentSpending decimal.Decimal

	Updated *budgetgoal.BudgetGoal
}

func (u *UpdateBudgetGoal) Name() string {
	return "update_budget_goal"
}

func (u *UpdateBudgetGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.BudgetGoals.FindByIDForUpdate(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("lock budget goal: %w", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("BudgetGoal", u.ID)
	}

	err = writer.BudgetGoals.Update(ctx, &budgetgoal.BudgetGoalUpdate{
		ID:              u.ID,
		Name:            u.GoalName,
		Amount:          u.Amount,
		TimePeriod:      u.TimePeriod,
		CurrentSpending: u.CurrentSpending,
	})
	if err != nil {
		return fmt.Errorf("update budget goal: %w", err)
	}

	u.Updated, err = writer.BudgetGoals.FindByID(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("reload budget goal: %w", err)
	}
	return nil
}
