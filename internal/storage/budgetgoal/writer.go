package budgetgoal

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate loads a goal and locks its row until the transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*BudgetGoal, error) {
	return w.findOne(ctx,
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
}

// Insert creates a new budget goal and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *BudgetGoalCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("budget_goals", "name", "amount", "time_period", "current_spending"),
		im.Values(psql.Arg(create.Name, create.Amount, create.TimePeriod, create.CurrentSpending)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update overwrites the mutable columns of a budget goal.
func (w *Writer) Update(ctx context.Context, update *BudgetGoalUpdate) error {
	q := psql.Update(
		um.Table("budget_goals"),
		um.SetCol("name").ToArg(update.Name),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("time_period").ToArg(update.TimePeriod),
		um.SetCol("current_spending").ToArg(update.CurrentSpending),
		um.Where(psql.Quote("id").EQ(psql.Arg(update.ID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// IncrementSpending adds delta to the goal's running total.
func (w *Writer) IncrementSpending(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	q := psql.Update(
		um.Table("budget_goals"),
		um.SetCol("current_spending").To(psql.Raw("COALESCE(current_spending, 0) + ?", delta)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// SetSpending replaces the goal's running total.
func (w *Writer) SetSpending(ctx context.Context, id uuid.UUID, spending decimal.Decimal) error {
	q := psql.Update(
		um.Table("budget_goals"),
		um.SetCol("current_spending").ToArg(spending),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes a budget goal. It reports whether a row was deleted.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("budget_goals"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
