// Package suggest proposes a category name for a transaction description.
package suggest

import (
	"context"

	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

// FallbackCategory is returned whenever no suggestion can be produced.
const FallbackCategory = "other"

// Suggester never fails: any problem degrades to FallbackCategory.
type Suggester interface {
	Suggest(ctx context.Context, description string) string
}

// CategorySource lists the categories a suggestion may choose from.
type CategorySource interface {
	FindAll(ctx context.Context) ([]*category.Category, error)
}

// Fallback always suggests FallbackCategory. It is used when no classifier
// is configured.
type Fallback struct{}

func (Fallback) Suggest(context.Context, string) string {
	return FallbackCategory
}
