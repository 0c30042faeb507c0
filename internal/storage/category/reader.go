package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

// FindAll returns every category ordered by name.
func (r *Reader) FindAll(ctx context.Context) ([]*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name", "created_at"),
		sm.From("categories"),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[*categoryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i, row := range rows {
		result[i] = rowToCategory(row)
	}
	return result, nil
}

// FindByID retrieves a category by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name", "created_at"),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*categoryRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToCategory(row), nil
}

// ExistsByID reports whether a category with the given ID exists.
func (r *Reader) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COUNT(*) > 0")),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[bool])
}
