package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

func categoryFromStorage(row *category.Category) Category {
	return Category{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}
