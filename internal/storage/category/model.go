package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category represents a category record.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// IReader defines the read side of category storage.
// FindByID returns (nil, nil) when the category does not exist.
type IReader interface {
	FindAll(ctx context.Context) ([]*Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// IWriter defines category storage operations available inside a unit of work.
// Deleting a category leaves its transactions uncategorized.
type IWriter interface {
	IReader
	Insert(ctx context.Context, name string) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func rowToCategory(row *categoryRow) *Category {
	return &Category{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}
