package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// UpdateTransaction overwrites a transaction. A zero Date keeps the stored
// date. Budget goal spending is not recalculated.
type UpdateTransaction struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Type         transaction.TransactionType
	Description  string
	Date         time.Time
	CategoryID   uuid.NullUUID
	BudgetGoalID uuid.NullUUID

	Updated *transaction.Transaction
}

func (u *UpdateTransaction) Name() string {
	return "update_transaction"
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("find transaction: %w", err)
	}
	if existing == nil {
		return apperrors.NewNotFoundError("Transaction", u.ID)
	}

	if err := checkReferences(ctx, writer, u.CategoryID, u.BudgetGoalID); err != nil {
		return err
	}

	date := existing.Date
	if !u.Date.IsZero() {
		date = u.Date
	}

	err = writer.Transactions.Update(ctx, &transaction.TransactionUpdate{
		ID:           u.ID,
		Amount:       u.Amount,
		Type:         u.Type,
		Description:  u.Description,
		Date:         date,
		CategoryID:   u.CategoryID,
		BudgetGoalID: u.BudgetGoalID,
	})
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	u.Updated, err = writer.Transactions.FindByID(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("reload transaction: %w", err)
	}
	return nil
}
