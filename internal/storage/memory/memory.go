// Package memory is an in-process storage backend. Writers work on a private
// copy of the data that replaces the committed state on Commit, so a unit of
// work is all-or-nothing. One writer runs at a time.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var ErrTxDone = errors.New("memory: transaction already committed or rolled back")

type transactionRecord struct {
	transaction.Transaction
	seq int64
}

type state struct {
	transactions map[uuid.UUID]transactionRecord
	goals        map[uuid.UUID]budgetgoal.BudgetGoal
	categories   map[uuid.UUID]category.Category
	seq          int64
}

func newState() *state {
	return &state{
		transactions: make(map[uuid.UUID]transactionRecord),
		goals:        make(map[uuid.UUID]budgetgoal.BudgetGoal),
		categories:   make(map[uuid.UUID]category.Category),
	}
}

func (s *state) clone() *state {
	c := &state{
		transactions: make(map[uuid.UUID]transactionRecord, len(s.transactions)),
		goals:        make(map[uuid.UUID]budgetgoal.BudgetGoal, len(s.goals)),
		categories:   make(map[uuid.UUID]category.Category, len(s.categories)),
		seq:          s.seq,
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.goals {
		c.goals[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	return c
}

// Backend implements storage.Backend in memory.
type Backend struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	committed *state
	now       func() time.Time
}

var _ storage.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{
		committed: newState(),
		now:       time.Now,
	}
}

// NewStorage returns a Storage backed by a fresh in-memory Backend.
func NewStorage() *storage.Storage {
	return storage.New(New())
}

// Reader returns views that read the committed state.
func (b *Backend) Reader() *storage.Reader {
	acquire := func() (*state, func()) {
		b.mu.RLock()
		return b.committed, b.mu.RUnlock
	}
	return &storage.Reader{
		Transactions: &transactionTable{acquire: acquire, now: b.now},
		BudgetGoals:  &goalTable{acquire: acquire, now: b.now},
		Categories:   &categoryTable{acquire: acquire, now: b.now},
	}
}

// Begin blocks until no other writer is active, then returns a Writer over a
// private copy of the committed state.
func (b *Backend) Begin(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.writeMu.Lock()

	b.mu.RLock()
	working := b.committed.clone()
	b.mu.RUnlock()

	acquire := func() (*state, func()) {
		return working, func() {}
	}
	tx := &memTx{backend: b, working: working}
	return storage.NewWriter(tx, storage.Tables{
		Transactions: &transactionTable{acquire: acquire, now: b.now},
		BudgetGoals:  &goalTable{acquire: acquire, now: b.now},
		Categories:   &categoryTable{acquire: acquire, now: b.now},
	}), nil
}

type memTx struct {
	backend *Backend
	working *state
	done    bool
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.backend.mu.Lock()
	t.backend.committed = t.working
	t.backend.mu.Unlock()
	t.backend.writeMu.Unlock()
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.backend.writeMu.Unlock()
	return nil
}

// -- transactions --

type transactionTable struct {
	acquire func() (*state, func())
	now     func() time.Time
}

func (t *transactionTable) resolve(s *state, rec transactionRecord) *transaction.Transaction {
	tx := rec.Transaction
	tx.CategoryName = ""
	if tx.CategoryID.Valid {
		if c, ok := s.categories[tx.CategoryID.UUID]; ok {
			tx.CategoryName = c.Name
		}
	}
	return &tx
}

func (t *transactionTable) list(filter func(*transaction.Transaction) bool) []*transaction.Transaction {
	s, release := t.acquire()
	defer release()

	records := make([]transactionRecord, 0, len(s.transactions))
	for _, rec := range s.transactions {
		if filter == nil || filter(&rec.Transaction) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].seq < records[j].seq
	})

	result := make([]*transaction.Transaction, len(records))
	for i, rec := range records {
		result[i] = t.resolve(s, rec)
	}
	return result
}

func (t *transactionTable) FindAll(_ context.Context) ([]*transaction.Transaction, error) {
	return t.list(nil), nil
}

func (t *transactionTable) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	s, release := t.acquire()
	defer release()

	rec, ok := s.transactions[id]
	if !ok {
		return nil, nil
	}
	return t.resolve(s, rec), nil
}

func (t *transactionTable) FindByDateRange(_ context.Context, start, end time.Time) ([]*transaction.Transaction, error) {
	return t.list(func(tx *transaction.Transaction) bool {
		return !tx.Date.Before(start) && !tx.Date.After(end)
	}), nil
}

func (t *transactionTable) FindByBudgetGoal(_ context.Context, budgetGoalID uuid.UUID) ([]*transaction.Transaction, error) {
	return t.list(func(tx *transaction.Transaction) bool {
		return tx.BudgetGoalID.Valid && tx.BudgetGoalID.UUID == budgetGoalID
	}), nil
}

func (t *transactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	s, release := t.acquire()
	defer release()

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	s.seq++
	s.transactions[id] = transactionRecord{
		Transaction: transaction.Transaction{
			ID:           id,
			Amount:       create.Amount,
			Type:         create.Type,
			Description:  create.Description,
			Date:         create.Date,
			CategoryID:   create.CategoryID,
			BudgetGoalID: create.BudgetGoalID,
			CreatedAt:    t.now(),
		},
		seq: s.seq,
	}
	return id, nil
}

func (t *transactionTable) Update(_ context.Context, update *transaction.TransactionUpdate) error {
	s, release := t.acquire()
	defer release()

	rec, ok := s.transactions[update.ID]
	if !ok {
		return nil
	}
	rec.Amount = update.Amount
	rec.Type = update.Type
	rec.Description = update.Description
	rec.Date = update.Date
	rec.CategoryID = update.CategoryID
	rec.BudgetGoalID = update.BudgetGoalID
	s.transactions[update.ID] = rec
	return nil
}

func (t *transactionTable) ClearBudgetGoal(_ context.Context, id uuid.UUID) error {
	s, release := t.acquire()
	defer release()

	rec, ok := s.transactions[id]
	if !ok {
		return nil
	}
	rec.BudgetGoalID = uuid.NullUUID{}
	s.transactions[id] = rec
	return nil
}

func (t *transactionTable) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s, release := t.acquire()
	defer release()

	if _, ok := s.transactions[id]; !ok {
		return false, nil
	}
	delete(s.transactions, id)
	return true, nil
}

// -- budget goals --

type goalTable struct {
	acquire func() (*state, func())
	now     func() time.Time
}

func (g *goalTable) FindAll(_ context.Context) ([]*budgetgoal.BudgetGoal, error) {
	s, release := g.acquire()
	defer release()

	result := make([]*budgetgoal.BudgetGoal, 0, len(s.goals))
	for _, goal := range s.goals {
		goal := goal
		result = append(result, &goal)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (g *goalTable) FindByID(_ context.Context, id uuid.UUID) (*budgetgoal.BudgetGoal, error) {
	s, release := g.acquire()
	defer release()

	goal, ok := s.goals[id]
	if !ok {
		return nil, nil
	}
	return &goal, nil
}

// FindByIDForUpdate needs no lock: the writer already owns the working copy.
func (g *goalTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*budgetgoal.BudgetGoal, error) {
	return g.FindByID(ctx, id)
}

func (g *goalTable) Insert(_ context.Context, create *budgetgoal.BudgetGoalCreate) (uuid.UUID, error) {
	s, release := g.acquire()
	defer release()

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	s.goals[id] = budgetgoal.BudgetGoal{
		ID:              id,
		Name:            create.Name,
		Amount:          create.Amount,
		TimePeriod:      create.TimePeriod,
		CurrentSpending: create.CurrentSpending,
		CreatedAt:       g.now(),
	}
	return id, nil
}

func (g *goalTable) Update(_ context.Context, update *budgetgoal.BudgetGoalUpdate) error {
	s, release := g.acquire()
	defer release()

	goal, ok := s.goals[update.ID]
	if !ok {
		return nil
	}
	goal.Name = update.Name
	goal.Amount = update.Amount
	goal.TimePeriod = update.TimePeriod
	goal.CurrentSpending = update.CurrentSpending
	s.goals[update.ID] = goal
	return nil
}

func (g *goalTable) IncrementSpending(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	s, release := g.acquire()
	defer release()

	goal, ok := s.goals[id]
	if !ok {
		return nil
	}
	goal.CurrentSpending = goal.CurrentSpending.Add(delta)
	s.goals[id] = goal
	return nil
}

func (g *goalTable) SetSpending(_ context.Context, id uuid.UUID, spending decimal.Decimal) error {
	s, release := g.acquire()
	defer release()

	goal, ok := s.goals[id]
	if !ok {
		return nil
	}
	goal.CurrentSpending = spending
	s.goals[id] = goal
	return nil
}

func (g *goalTable) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s, release := g.acquire()
	defer release()

	if _, ok := s.goals[id]; !ok {
		return false, nil
	}
	delete(s.goals, id)
	return true, nil
}

// -- categories --

type categoryTable struct {
	acquire func() (*state, func())
	now     func() time.Time
}

func (c *categoryTable) FindAll(_ context.Context) ([]*category.Category, error) {
	s, release := c.acquire()
	defer release()

	result := make([]*category.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		cat := cat
		result = append(result, &cat)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (c *categoryTable) FindByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	s, release := c.acquire()
	defer release()

	cat, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

func (c *categoryTable) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	s, release := c.acquire()
	defer release()

	_, ok := s.categories[id]
	return ok, nil
}

func (c *categoryTable) Insert(_ context.Context, name string) (uuid.UUID, error) {
	s, release := c.acquire()
	defer release()

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	s.categories[id] = category.Category{
		ID:        id,
		Name:      name,
		CreatedAt: c.now(),
	}
	return id, nil
}

// Delete mirrors ON DELETE SET NULL on transactions.category_id.
func (c *categoryTable) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s, release := c.acquire()
	defer release()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	for txID, rec := range s.transactions {
		if rec.CategoryID.Valid && rec.CategoryID.UUID == id {
			rec.CategoryID = uuid.NullUUID{}
			s.transactions[txID] = rec
		}
	}
	return true, nil
}
