package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Tx is the commit boundary behind a Writer.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Tables groups the writable table views bound to one Tx.
type Tables struct {
	Transactions transaction.IWriter
	BudgetGoals  budgetgoal.IWriter
	Categories   category.IWriter
}

// Writer is a unit of work: every change made through its tables is
// committed or rolled back together.
type Writer struct {
	tx Tx
	Tables
}

func NewWriter(tx Tx, tables Tables) *Writer {
	return &Writer{
		tx:     tx,
		Tables: tables,
	}
}

func newBobWriter(tx bob.Tx) *Writer {
	return NewWriter(tx, Tables{
		Transactions: transaction.NewWriter(tx),
		BudgetGoals:  budgetgoal.NewWriter(tx),
		Categories:   category.NewWriter(tx),
	})
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
