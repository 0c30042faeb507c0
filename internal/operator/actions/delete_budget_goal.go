package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// DeleteBudgetGoal unlinks every transaction from the goal and then deletes
// it. The transactions themselves are kept.
type DeleteBudgetGoal struct {
	ID uuid.UUID

	Unlinked int
}

func (d *DeleteBudgetGoal) Name() string {
	return "delete_budget_goal"
}

func (d *DeleteBudgetGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	goal, err := writer.BudgetGoals.FindByIDForUpdate(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("lock budget goal: %w", err)
	}
	if goal == nil {
		return apperrors.NewNotFoundError("BudgetGoal", d.ID)
	}

	linked, err := writer.Transactions.FindByBudgetGoal(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("find linked transactions: %w", err)
	}

	for _, t := range linked {
		if err := writer.Transactions.ClearBudgetGoal(ctx, t.ID); err != nil {
			return fmt.Errorf("unlink transaction %s: %w", t.ID, err)
		}
	}

	deleted, err := writer.BudgetGoals.Delete(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("delete budget goal: %w", err)
	}
	if !deleted {
		return apperrors.NewNotFoundError("BudgetGoal", d.ID)
	}

	d.Unlinked = len(linked)
	return nil
}
