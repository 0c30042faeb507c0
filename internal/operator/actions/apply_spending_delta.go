package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// ApplySpendingDelta adds an expense's amount to its budget goal's current
// spending. It is additive only and runs at creation time; updates and
// deletes of linked transactions never call it, so ReconcileSpending is the
// way to correct drift.
//
// Goal is left nil for income and unlinked transactions.
type ApplySpendingDelta struct {
	Transaction *transaction.Transaction

	Goal *budgetgoal.BudgetGoal
}

func (a *ApplySpendingDelta) Name() string {
	return "apply_spending_delta"
}

func (a *ApplySpendingDelta) Perform(ctx context.Context, writer *storage.Writer) error {
	t := a.Transaction
	if t == nil || t.Type != transaction.TransactionTypeExpense || !t.BudgetGoalID.Valid {
		return nil
	}

	goalID := t.BudgetGoalID.UUID
	goal, err := writer.BudgetGoals.FindByIDForUpdate(ctx, goalID)
	if err != nil {
		return fmt.Errorf("lock budget goal: %w", err)
	}
	if goal == nil {
		return apperrors.NewNotFoundError("BudgetGoal", goalID)
	}

	if err := writer.BudgetGoals.IncrementSpending(ctx, goalID, t.Amount); err != nil {
		return fmt.Errorf("increment spending: %w", err)
	}

	updated, err := writer.BudgetGoals.FindByID(ctx, goalID)
	if err != nil {
		return fmt.Errorf("reload budget goal: %w", err)
	}
	a.Goal = updated
	return nil
}
