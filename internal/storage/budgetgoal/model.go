package budgetgoal

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// BudgetGoal represents a budget goal record.
type BudgetGoal struct {
	ID              uuid.UUID
	Name            string
	Amount          decimal.Decimal
	TimePeriod      string
	CurrentSpending decimal.Decimal
	CreatedAt       time.Time
}

// BudgetGoalCreate is the input for creating a new budget goal.
type BudgetGoalCreate struct {
	Name            string
	Amount          decimal.Decimal
	TimePeriod      string
	CurrentSpending decimal.Decimal
}

// BudgetGoalUpdate overwrites every mutable column of an existing budget goal.
type BudgetGoalUpdate struct {
	ID              uuid.UUID
	Name            string
	Amount          decimal.Decimal
	TimePeriod      string
	CurrentSpending decimal.Decimal
}

// IReader defines the read side of budget goal storage.
// FindByID returns (nil, nil) when the goal does not exist.
type IReader interface {
	FindAll(ctx context.Context) ([]*BudgetGoal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetGoal, error)
}

// IWriter defines budget goal storage operations available inside a unit of work.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*BudgetGoal, error)
	Insert(ctx context.Context, create *BudgetGoalCreate) (uuid.UUID, error)
	Update(ctx context.Context, update *BudgetGoalUpdate) error
	// IncrementSpending adds delta to current_spending in a single statement.
	IncrementSpending(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	SetSpending(ctx context.Context, id uuid.UUID, spending decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type budgetGoalRow struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Amount          decimal.Decimal `db:"amount"`
	TimePeriod      string          `db:"time_period"`
	CurrentSpending decimal.Decimal `db:"current_spending"`
	CreatedAt       time.Time       `db:"created_at"`
}

func rowToBudgetGoal(row *budgetGoalRow) *BudgetGoal {
	return &BudgetGoal{
		ID:              row.ID,
		Name:            row.Name,
		Amount:          row.Amount,
		TimePeriod:      row.TimePeriod,
		CurrentSpending: row.CurrentSpending,
		CreatedAt:       row.CreatedAt,
	}
}
