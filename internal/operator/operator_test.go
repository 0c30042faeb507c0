package operator

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func newTestDelegator(t *testing.T, workers int) (*OperatorDelegator, *storage.Storage) {
	t.Helper()
	store := memory.NewStorage()
	d := NewOperatorDelegator(store, workers, newTestLogger())
	d.Start()
	t.Cleanup(d.Stop)
	return d, store
}

type failingAction struct {
	err error
}

func (f *failingAction) Name() string {
	return "failing"
}

func (f *failingAction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Categories.Insert(ctx, "Groceries"); err != nil {
		return err
	}
	return f.err
}

func TestProcess_Commits(t *testing.T) {
	d, store := newTestDelegator(t, 1)

	action := &actions.CreateCategory{CategoryName: "Groceries"}
	require.NoError(t, d.Process(context.Background(), action))
	require.NotNil(t, action.Created)

	found, err := store.Read().Categories.FindByID(context.Background(), action.Created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Groceries", found.Name)
}

func TestProcess_RollsBackOnError(t *testing.T) {
	d, store := newTestDelegator(t, 1)

	wantErr := errors.New("boom")
	err := d.Process(context.Background(), &failingAction{err: wantErr})
	assert.ErrorIs(t, err, wantErr)

	categories, err := store.Read().Categories.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestProcess_CancelledContext(t *testing.T) {
	d, _ := newTestDelegator(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.CreateCategory{CategoryName: "Rent"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_AfterStop(t *testing.T) {
	d, _ := newTestDelegator(t, 2)
	d.Stop()

	err := d.Process(context.Background(), &actions.CreateCategory{CategoryName: "Rent"})
	assert.ErrorIs(t, err, ErrStopped)
	assert.False(t, d.Running())
}

func TestProcess_ConcurrentSpendingDeltas(t *testing.T) {
	d, store := newTestDelegator(t, 4)
	ctx := context.Background()

	goal := &actions.CreateBudgetGoal{
		GoalName:   "Food",
		Amount:     decimal.RequireFromString("1000"),
		TimePeriod: "Monthly",
	}
	require.NoError(t, d.Process(ctx, goal))

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- d.Process(ctx, &actions.CreateTransaction{
				Amount:       decimal.RequireFromString("2.50"),
				Type:         transaction.TransactionTypeExpense,
				Description:  "Coffee",
				Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				BudgetGoalID: uuid.NullUUID{UUID: goal.Created.ID, Valid: true},
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	updated, err := store.Read().BudgetGoals.FindByID(ctx, goal.Created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("125").Equal(updated.CurrentSpending),
		"got %s", updated.CurrentSpending)
}
