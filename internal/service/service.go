package service

import (
	"context"
	"time"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/suggest"
)

// actionProcessor runs an action in its own unit of work.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	BudgetGoal  *BudgetGoalService
	Category    *CategoryService
	Report      *ReportService
}

// NewService creates a new Service. Reads go to store directly; writes go
// through processor.
func NewService(store *storage.Storage, processor actionProcessor, suggester suggest.Suggester) *Service {
	return &Service{
		Transaction: NewTransactionService(store, processor),
		BudgetGoal:  NewBudgetGoalService(store, processor),
		Category:    NewCategoryService(store, processor, suggester),
		Report:      NewReportService(store),
	}
}

var now = time.Now
