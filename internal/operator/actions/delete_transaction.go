package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// DeleteTransaction removes a transaction without touching budget goal
// spending.
type DeleteTransaction struct {
	ID uuid.UUID
}

func (d *DeleteTransaction) Name() string {
	return "delete_transaction"
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Transactions.Delete(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if !deleted {
		return apperrors.NewNotFoundError("Transaction", d.ID)
	}
	return nil
}
