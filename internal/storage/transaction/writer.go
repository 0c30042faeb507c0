package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("transactions", "amount", "type", "description", "date", "category_id", "budget_goal_id"),
		im.Values(psql.Arg(
			create.Amount,
			int16(create.Type),
			create.Description,
			create.Date,
			create.CategoryID,
			create.BudgetGoalID,
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update overwrites the mutable columns of a transaction.
func (w *Writer) Update(ctx context.Context, update *TransactionUpdate) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("type").ToArg(int16(update.Type)),
		um.SetCol("description").ToArg(update.Description),
		um.SetCol("date").ToArg(update.Date),
		um.SetCol("category_id").ToArg(update.CategoryID),
		um.SetCol("budget_goal_id").ToArg(update.BudgetGoalID),
		um.Where(psql.Quote("id").EQ(psql.Arg(update.ID))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// ClearBudgetGoal severs the link between a transaction and its budget goal.
func (w *Writer) ClearBudgetGoal(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("budget_goal_id").ToArg(uuid.NullUUID{}),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes a transaction. It reports whether a row was deleted.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("transactions"),
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
