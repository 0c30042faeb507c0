package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// selectTransactions builds the base query joining each transaction with its
// category name.
func selectTransactions(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			psql.Quote("t", "id"),
			psql.Quote("t", "amount"),
			psql.Quote("t", "type"),
			psql.Quote("t", "description"),
			psql.Quote("t", "date"),
			psql.Quote("t", "category_id"),
			psql.Quote("c", "name").As("category_name"),
			psql.Quote("t", "budget_goal_id"),
			psql.Quote("t", "created_at"),
		),
		sm.From("transactions").As("t"),
		sm.LeftJoin("categories").As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
	}
	base = append(base, queryMods...)
	base = append(base,
		sm.OrderBy(psql.Quote("t", "date")).Asc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Asc(),
		sm.OrderBy(psql.Quote("t", "id")).Asc(),
	)
	return psql.Select(base...)
}

func (r *Reader) list(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) ([]*Transaction, error) {
	rows, err := bob.All(ctx, r.exec, selectTransactions(queryMods...), scan.StructMapper[*transactionRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

// FindAll returns every transaction.
func (r *Reader) FindAll(ctx context.Context) ([]*Transaction, error) {
	return r.list(ctx)
}

// FindByID retrieves a transaction by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := bob.One(ctx, r.exec,
		selectTransactions(sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id)))),
		scan.StructMapper[*transactionRow](),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row), nil
}

// FindByDateRange returns transactions dated within [start, end], both inclusive.
func (r *Reader) FindByDateRange(ctx context.Context, start, end time.Time) ([]*Transaction, error) {
	return r.list(ctx,
		sm.Where(psql.Quote("t", "date").GTE(psql.Arg(start))),
		sm.Where(psql.Quote("t", "date").LTE(psql.Arg(end))),
	)
}

// FindByBudgetGoal returns the transactions linked to a budget goal.
func (r *Reader) FindByBudgetGoal(ctx context.Context, budgetGoalID uuid.UUID) ([]*Transaction, error) {
	return r.list(ctx, sm.Where(psql.Quote("t", "budget_goal_id").EQ(psql.Arg(budgetGoalID))))
}
