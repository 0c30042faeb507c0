package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: processor}
}

func validateTransactionInput(input TransactionInput) error {
	if !input.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if input.Type == nil {
		return apperrors.NewValidationError("type", "is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return apperrors.NewValidationError("description", "must not be empty")
	}
	return nil
}

// CreateTransaction validates and stores a transaction. When it is an expense
// linked to a budget goal, the goal's current spending grows by its amount in
// the same unit of work.
func (s *TransactionService) CreateTransaction(ctx context.Context, input TransactionInput) (*Transaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	date := truncateDate(input.Date)
	if date.IsZero() {
		date = truncateDate(now())
	}

	action := &actions.CreateTransaction{
		Amount:       input.Amount,
		Type:         transactionTypeToStorage(*input.Type),
		Description:  input.Description,
		Date:         date,
		CategoryID:   nullUUID(input.CategoryID),
		BudgetGoalID: nullUUID(input.BudgetGoalID),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	metrics.TransactionsCreated.WithLabelValues(input.Type.String()).Inc()
	if action.UpdatedGoal != nil {
		metrics.SpendingDeltasApplied.Inc()
	}

	created := transactionFromStorage(action.Created)
	return &created, nil
}

// UpdateTransaction overwrites a transaction. The date is kept when input has
// none. Linked budget goal spending is left as it is.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input TransactionInput) (*Transaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	action := &actions.UpdateTransaction{
		ID:           id,
		Amount:       input.Amount,
		Type:         transactionTypeToStorage(*input.Type),
		Description:  input.Description,
		Date:         truncateDate(input.Date),
		CategoryID:   nullUUID(input.CategoryID),
		BudgetGoalID: nullUUID(input.BudgetGoalID),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	updated := transactionFromStorage(action.Updated)
	return &updated, nil
}

// DeleteTransaction removes a transaction. Linked budget goal spending is left
// as it is.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id})
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Read().Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if row == nil {
		return nil, apperrors.NewNotFoundError("Transaction", id)
	}

	t := transactionFromStorage(row)
	return &t, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := s.storage.Read().Transactions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactionsFromStorage(rows), nil
}

// GetTransactionsByDateRange returns the transactions dated within
// [start, end], both bounds inclusive.
func (s *TransactionService) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]Transaction, error) {
	start, end, err := validateDateRange(start, end)
	if err != nil {
		return nil, err
	}

	rows, err := s.storage.Read().Transactions.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("find transactions by date range: %w", err)
	}
	return transactionsFromStorage(rows), nil
}

// validateDateRange requires both bounds and start <= end, and returns them
// as calendar dates.
func validateDateRange(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		return start, end, apperrors.NewValidationError("startDate", "is required")
	}
	if end.IsZero() {
		return start, end, apperrors.NewValidationError("endDate", "is required")
	}

	start, end = truncateDate(start), truncateDate(end)
	if start.After(end) {
		return start, end, apperrors.NewValidationError("startDate", "must not be after endDate")
	}
	return start, end, nil
}
