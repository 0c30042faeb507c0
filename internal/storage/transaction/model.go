package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type TransactionType int8

const (
	TransactionTypeExpense TransactionType = iota
	TransactionTypeIncome
)

// Transaction represents a transaction record.
// CategoryName is joined from the categories table and is only valid when
// CategoryID is.
type Transaction struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Type         TransactionType
	Description  string
	Date         time.Time
	CategoryID   uuid.NullUUID
	CategoryName string
	BudgetGoalID uuid.NullUUID
	CreatedAt    time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	Amount       decimal.Decimal
	Type         TransactionType
	Description  string
	Date         time.Time
	CategoryID   uuid.NullUUID
	BudgetGoalID uuid.NullUUID
}

// TransactionUpdate overwrites every mutable column of an existing transaction.
type TransactionUpdate struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Type         TransactionType
	Description  string
	Date         time.Time
	CategoryID   uuid.NullUUID
	BudgetGoalID uuid.NullUUID
}

// IReader defines the read side of transaction storage.
// Find methods return (nil, nil) when the record does not exist.
// Lists are ordered by date, then creation order.
type IReader interface {
	FindAll(ctx context.Context) ([]*Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*Transaction, error)
	FindByBudgetGoal(ctx context.Context, budgetGoalID uuid.UUID) ([]*Transaction, error)
}

// IWriter defines transaction storage operations available inside a unit of work.
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, update *TransactionUpdate) error
	ClearBudgetGoal(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type transactionRow struct {
	ID           uuid.UUID       `db:"id"`
	Amount       decimal.Decimal `db:"amount"`
	Type         int16           `db:"type"`
	Description  string          `db:"description"`
	Date         time.Time       `db:"date"`
	CategoryID   uuid.NullUUID   `db:"category_id"`
	CategoryName sql.NullString  `db:"category_name"`
	BudgetGoalID uuid.NullUUID   `db:"budget_goal_id"`
	CreatedAt    time.Time       `db:"created_at"`
}

func rowToTransaction(row *transactionRow) *Transaction {
	return &Transaction{
		ID:           row.ID,
		Amount:       row.Amount,
		Type:         TransactionType(row.Type),
		Description:  row.Description,
		Date:         row.Date.UTC(),
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName.String,
		BudgetGoalID: row.BudgetGoalID,
		CreatedAt:    row.CreatedAt,
	}
}
