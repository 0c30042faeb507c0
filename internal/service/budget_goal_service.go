package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// BudgetGoalService handles budget goal business logic.
//
// A goal's current spending follows an additive-only, creation-time
// contract: it grows when a linked expense is created and is not adjusted
// when linked transactions are later updated or deleted. ReconcileSpending
// recomputes it on request.
type BudgetGoalService struct {
	storage  *storage.Storage
	operator actionProcessor
}

func NewBudgetGoalService(store *storage.Storage, processor actionProcessor) *BudgetGoalService {
	return &BudgetGoalService{storage: store, operator: processor}
}

func (s *BudgetGoalService) CreateGoal(ctx context.Context, input BudgetGoalInput) (*BudgetGoal, error) {
	if !input.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if strings.TrimSpace(input.TimePeriod) == "" {
		return nil, apperrors.NewValidationError("timePeriod", "must not be empty")
	}

	action := &actions.CreateBudgetGoal{
		GoalName:   input.Name,
		Amount:     input.Amount,
		TimePeriod: input.TimePeriod,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	created := budgetGoalFromStorage(action.Created)
	return &created, nil
}

// UpdateGoal overwrites every field of the goal as given. Unlike CreateGoal
// it does not validate its input.
func (s *BudgetGoalService) UpdateGoal(ctx context.Context, id uuid.UUID, update BudgetGoalUpdate) (*BudgetGoal, error) {
	action := &actions.UpdateBudgetGoal{
		ID:              id,
		GoalName:        update.Name,
		Amount:          update.Amount,
		TimePeriod:      update.TimePeriod,
		CurrentSpending: update.CurrentSpending,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	updated := budgetGoalFromStorage(action.Updated)
	return &updated, nil
}

// DeleteGoal unlinks the goal's transactions and deletes it in one unit of
// work. It returns how many transactions were unlinked.
func (s *BudgetGoalService) DeleteGoal(ctx context.Context, id uuid.UUID) (int, error) {
	action := &actions.DeleteBudgetGoal{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.Unlinked, nil
}

func (s *BudgetGoalService) GetGoal(ctx context.Context, id uuid.UUID) (*BudgetGoal, error) {
	row, err := s.storage.Read().BudgetGoals.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find budget goal: %w", err)
	}
	if row == nil {
		return nil, apperrors.NewNotFoundError("BudgetGoal", id)
	}

	goal := budgetGoalFromStorage(row)
	return &goal, nil
}

func (s *BudgetGoalService) ListGoals(ctx context.Context) ([]BudgetGoal, error) {
	rows, err := s.storage.Read().BudgetGoals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budget goals: %w", err)
	}

	goals := make([]BudgetGoal, len(rows))
	for i, row := range rows {
		goals[i] = budgetGoalFromStorage(row)
	}
	return goals, nil
}

// ApplySpendingDelta adds t's amount to its goal when t is a linked expense
// and returns the updated goal. It returns nil for income and unlinked
// transactions. CreateTransaction already applies it; calling it again for
// the same transaction counts the amount twice.
func (s *BudgetGoalService) ApplySpendingDelta(ctx context.Context, t Transaction) (*BudgetGoal, error) {
	if t.Type != TransactionTypeExpense || t.BudgetGoalID == nil {
		return nil, nil
	}

	action := &actions.ApplySpendingDelta{
		Transaction: &transaction.Transaction{
			ID:           t.ID,
			Amount:       t.Amount,
			Type:         transactionTypeToStorage(t.Type),
			BudgetGoalID: nullUUID(t.BudgetGoalID),
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	metrics.SpendingDeltasApplied.Inc()

	goal := budgetGoalFromStorage(action.Goal)
	return &goal, nil
}

// ReconcileSpending sets the goal's current spending to the sum of the
// expenses linked to it now.
func (s *BudgetGoalService) ReconcileSpending(ctx context.Context, id uuid.UUID) (*Reconciliation, error) {
	action := &actions.ReconcileSpending{ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return &Reconciliation{
		Goal:     budgetGoalFromStorage(action.Goal),
		Previous: action.Previous,
	}, nil
}
