package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// ReconcileSpending resets a goal's current spending to the sum of the
// expenses linked to it right now.
type ReconcileSpending struct {
	ID uuid.UUID

	Previous decimal.Decimal
	Goal     *budgetgoal.BudgetGoal
}

func (r *ReconcileSpending) Name() string {
	return "reconcile_spending"
}

func (r *ReconcileSpending) Perform(ctx context.Context, writer *storage.Writer) error {
	goal, err := writer.BudgetGoals.FindByIDForUpdate(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("lock budget goal: %w", err)
	}
	if goal == nil {
		return apperrors.NewNotFoundError("BudgetGoal", r.ID)
	}

	linked, err := writer.Transactions.FindByBudgetGoal(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("find linked transactions: %w", err)
	}

	spending := decimal.Zero
	for _, t := range linked {
		if t.Type == transaction.TransactionTypeExpense {
			spending = spending.Add(t.Amount)
		}
	}

	if err := writer.BudgetGoals.SetSpending(ctx, r.ID, spending); err != nil {
		return fmt.Errorf("set spending: %w", err)
	}

	r.Previous = goal.CurrentSpending
	r.Goal, err = writer.BudgetGoals.FindByID(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("reload budget goal: %w", err)
	}
	return nil
}
