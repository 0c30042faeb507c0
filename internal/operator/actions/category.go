package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

type CreateCategory struct {
	CategoryName string

	Created *category.Category
}

func (c *CreateCategory) Name() string {
	return "create_category"
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Categories.Insert(ctx, c.CategoryName)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	c.Created, err = writer.Categories.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload category: %w", err)
	}
	if c.Created == nil {
		return fmt.Errorf("category %s missing after insert", id)
	}
	return nil
}

// DeleteCategory removes a category; its transactions become uncategorized.
type DeleteCategory struct {
	ID uuid.UUID
}

func (d *DeleteCategory) Name() string {
	return "delete_category"
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Categories.Delete(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperrors.NewNotFoundError("Category", d.ID)
	}
	return nil
}
