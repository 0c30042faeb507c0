package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
	"github.com/carson-networks/budget-tracker/internal/suggest"
)

func newTestService(t *testing.T, suggester suggest.Suggester) (*Service, *storage.Storage) {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard

	store := memory.NewStorage()
	op := operator.NewOperatorDelegator(store, 2, logger)
	op.Start()
	t.Cleanup(op.Stop)

	if suggester == nil {
		suggester = suggest.Fallback{}
	}
	return NewService(store, op, suggester), store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func typePtr(t TransactionType) *TransactionType {
	return &t
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func mustCategory(t *testing.T, svc *Service, name string) *Category {
	t.Helper()
	c, err := svc.Category.CreateCategory(context.Background(), name)
	require.NoError(t, err)
	return c
}

func mustGoal(t *testing.T, svc *Service, amount string) *BudgetGoal {
	t.Helper()
	g, err := svc.BudgetGoal.CreateGoal(context.Background(), BudgetGoalInput{
		Name:       "Household",
		Amount:     dec(amount),
		TimePeriod: "Monthly",
	})
	require.NoError(t, err)
	return g
}

type txFixture struct {
	amount   string
	kind     TransactionType
	date     time.Time
	category *Category
	goal     *BudgetGoal
}

func mustTransaction(t *testing.T, svc *Service, fx txFixture) *Transaction {
	t.Helper()
	input := TransactionInput{
		Amount:      dec(fx.amount),
		Type:        typePtr(fx.kind),
		Description: "test transaction",
		Date:        fx.date,
	}
	if fx.category != nil {
		input.CategoryID = idPtr(fx.category.ID)
	}
	if fx.goal != nil {
		input.BudgetGoalID = idPtr(fx.goal.ID)
	}

	created, err := svc.Transaction.CreateTransaction(context.Background(), input)
	require.NoError(t, err)
	return created
}
