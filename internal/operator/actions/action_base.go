package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// IAction is a unit of work run by the operator. Perform's writes commit
// together when it returns nil and roll back otherwise.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}

// checkReferences fails with a NotFoundError when a set category or budget
// goal reference points at nothing.
func checkReferences(ctx context.Context, writer *storage.Writer, categoryID, budgetGoalID uuid.NullUUID) error {
	if categoryID.Valid {
		exists, err := writer.Categories.ExistsByID(ctx, categoryID.UUID)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !exists {
			return apperrors.NewNotFoundError("Category", categoryID.UUID)
		}
	}

	if budgetGoalID.Valid {
		goal, err := writer.BudgetGoals.FindByID(ctx, budgetGoalID.UUID)
		if err != nil {
			return fmt.Errorf("check budget goal: %w", err)
		}
		if goal == nil {
			return apperrors.NewNotFoundError("BudgetGoal", budgetGoalID.UUID)
		}
	}

	return nil
}
