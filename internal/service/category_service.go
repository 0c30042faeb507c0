package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/suggest"
)

type CategoryService struct {
	storage   *storage.Storage
	operator  actionProcessor
	suggester suggest.Suggester
}

func NewCategoryService(store *storage.Storage, processor actionProcessor, suggester suggest.Suggester) *CategoryService {
	return &CategoryService{storage: store, operator: processor, suggester: suggester}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.storage.Read().Categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromStorage(row)
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}

	action := &actions.CreateCategory{CategoryName: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	created := categoryFromStorage(action.Created)
	return &created, nil
}

// DeleteCategory removes a category. Transactions that used it become
// uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteCategory{ID: id})
}

// SuggestForTransaction suggests a category for a stored transaction's
// description.
func (s *CategoryService) SuggestForTransaction(ctx context.Context, transactionID uuid.UUID) (string, error) {
	row, err := s.storage.Read().Transactions.FindByID(ctx, transactionID)
	if err != nil {
		return "", fmt.Errorf("find transaction: %w", err)
	}
	if row == nil {
		return "", apperrors.NewNotFoundError("Transaction", transactionID)
	}

	return s.suggester.Suggest(ctx, row.Description), nil
}

func (s *CategoryService) Suggest(ctx context.Context, description string) string {
	return s.suggester.Suggest(ctx, description)
}
