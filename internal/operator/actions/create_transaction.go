package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// CreateTransaction inserts a transaction and applies its spending delta to
// the linked budget goal in the same unit of work.
type CreateTransaction struct {
	Amount       decimal.Decimal
	Type         transaction.TransactionType
	Description  string
	Date         time.Time
	CategoryID   uuid.NullUUID
	BudgetGoalID uuid.NullUUID

	Created     *transaction.Transaction
	UpdatedGoal *budgetgoal.BudgetGoal
}

func (c *CreateTransaction) Name() string {
	return "create_transaction"
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := checkReferences(ctx, writer, c.CategoryID, c.BudgetGoalID); err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		Amount:       c.Amount,
		Type:         c.Type,
		Description:  c.Description,
		Date:         c.Date,
		CategoryID:   c.CategoryID,
		BudgetGoalID: c.BudgetGoalID,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	created, err := writer.Transactions.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload transaction: %w", err)
	}
	if created == nil {
		return fmt.Errorf("transaction %s missing after insert", id)
	}

	delta := &ApplySpendingDelta{Transaction: created}
	if err := delta.Perform(ctx, writer); err != nil {
		return err
	}

	c.Created = created
	c.UpdatedGoal = delta.Goal
	return nil
}
