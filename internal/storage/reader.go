package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Reader groups the read-only table views. Reads outside a Writer see
// committed data only.
type Reader struct {
	Transactions transaction.IReader
	BudgetGoals  budgetgoal.IReader
	Categories   category.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Transactions: transaction.NewReader(exec),
		BudgetGoals:  budgetgoal.NewReader(exec),
		Categories:   category.NewReader(exec),
	}
}
