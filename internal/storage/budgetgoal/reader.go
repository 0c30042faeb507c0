package budgetgoal

import (
	"context"
	"database/sql"
	"errors"

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

func selectBudgetGoals(queryMods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "name", "amount", "time_period", "current_spending", "created_at"),
		sm.From("budget_goals"),
	}
	return psql.Select(append(base, queryMods...)...)
}

// FindAll returns every budget goal ordered by creation time.
func (r *Reader) FindAll(ctx context.Context) ([]*BudgetGoal, error) {
	rows, err := bob.All(ctx, r.exec,
		selectBudgetGoals(
			sm.OrderBy("created_at").Asc(),
			sm.OrderBy("id").Asc(),
		),
		scan.StructMapper[*budgetGoalRow](),
	)
	if err != nil {
		return nil, err
	}
	result := make([]*BudgetGoal, len(rows))
	for i, row := range rows {
		result[i] = rowToBudgetGoal(row)
	}
	return result, nil
}

// FindByID retrieves a budget goal by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*BudgetGoal, error) {
	return r.findOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

func (r *Reader) findOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*BudgetGoal, error) {
	row, err := bob.One(ctx, r.exec, selectBudgetGoals(queryMods...), scan.StructMapper[*budgetGoalRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToBudgetGoal(row), nil
}
