package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
)

func TestCreateGoal_StartsAtZero(t *testing.T) {
	svc, _ := newTestService(t, nil)

	for _, amount := range []string{"0.01", "100", "123456.78"} {
		goal, err := svc.BudgetGoal.CreateGoal(context.Background(), BudgetGoalInput{
			Name:       "Goal",
			Amount:     dec(amount),
			TimePeriod: "Weekly",
		})
		require.NoError(t, err)
		assert.True(t, goal.CurrentSpending.IsZero())
		assert.True(t, dec(amount).Equal(goal.Amount))
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	svc, store := newTestService(t, nil)

	tests := []struct {
		name  string
		input BudgetGoalInput
		field string
	}{
		{"zero amount", BudgetGoalInput{Amount: dec("0"), TimePeriod: "Monthly"}, "amount"},
		{"negative amount", BudgetGoalInput{Amount: dec("-10"), TimePeriod: "Monthly"}, "amount"},
		{"empty time period", BudgetGoalInput{Amount: dec("10")}, "timePeriod"},
		{"blank time period", BudgetGoalInput{Amount: dec("10"), TimePeriod: "  "}, "timePeriod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BudgetGoal.CreateGoal(context.Background(), tt.input)

			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	goals, err := store.Read().BudgetGoals.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestUpdateGoal_NoRevalidation(t *testing.T) {
	svc, _ := newTestService(t, nil)
	goal := mustGoal(t, svc, "100")

	updated, err := svc.BudgetGoal.UpdateGoal(context.Background(), goal.ID, BudgetGoalUpdate{
		Name:            "Renamed",
		Amount:          dec("-1"),
		TimePeriod:      "",
		CurrentSpending: dec("42"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, dec("-1").Equal(updated.Amount))
	assert.Empty(t, updated.TimePeriod)
	assert.True(t, dec("42").Equal(updated.CurrentSpending))
}

func TestUpdateGoal_NotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.BudgetGoal.UpdateGoal(context.Background(), uuid.Must(uuid.NewV4()), BudgetGoalUpdate{})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteGoal_UnlinksTransactions(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	goal := mustGoal(t, svc, "1000")
	other := mustGoal(t, svc, "50")

	var linked []*Transaction
	for i := 0; i < 3; i++ {
		linked = append(linked, mustTransaction(t, svc, txFixture{amount: "10", kind: TransactionTypeExpense, date: date(2025, 1, 5), goal: goal}))
	}
	untouched := mustTransaction(t, svc, txFixture{amount: "10", kind: TransactionTypeExpense, date: date(2025, 1, 5), goal: other})

	unlinked, err := svc.BudgetGoal.DeleteGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, unlinked)

	for _, tx := range linked {
		found, err := svc.Transaction.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)
		assert.Nil(t, found.BudgetGoalID)
	}
	kept, err := svc.Transaction.GetTransaction(ctx, untouched.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.BudgetGoalID)
	assert.Equal(t, other.ID, *kept.BudgetGoalID)

	_, err = svc.BudgetGoal.GetGoal(ctx, goal.ID)
	assert.True(t, apperrors.IsNotFound(err))

	goals, err := svc.BudgetGoal.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, other.ID, goals[0].ID)

	_, err = svc.BudgetGoal.DeleteGoal(ctx, goal.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplySpendingDelta(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	goal := mustGoal(t, svc, "1000")

	updated, err := svc.BudgetGoal.ApplySpendingDelta(ctx, Transaction{
		Amount:       dec("12.34"),
		Type:         TransactionTypeExpense,
		BudgetGoalID: idPtr(goal.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, dec("12.34").Equal(updated.CurrentSpending))

	none, err := svc.BudgetGoal.ApplySpendingDelta(ctx, Transaction{
		Amount:       dec("99"),
		Type:         TransactionTypeIncome,
		BudgetGoalID: idPtr(goal.ID),
	})
	require.NoError(t, err)
	assert.Nil(t, none)

	none, err = svc.BudgetGoal.ApplySpendingDelta(ctx, Transaction{Amount: dec("99"), Type: TransactionTypeExpense})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReconcileSpending(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	goal := mustGoal(t, svc, "1000")

	first := mustTransaction(t, svc, txFixture{amount: "40", kind: TransactionTypeExpense, date: date(2025, 1, 5), goal: goal})
	mustTransaction(t, svc, txFixture{amount: "60", kind: TransactionTypeExpense, date: date(2025, 1, 6), goal: goal})
	_, err := svc.Transaction.UpdateTransaction(ctx, first.ID, TransactionInput{
		Amount:       dec("15"),
		Type:         typePtr(TransactionTypeExpense),
		Description:  "corrected",
		BudgetGoalID: idPtr(goal.ID),
	})
	require.NoError(t, err)

	result, err := svc.BudgetGoal.ReconcileSpending(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(result.Previous))
	assert.True(t, dec("75").Equal(result.Goal.CurrentSpending))

	_, err = svc.BudgetGoal.ReconcileSpending(ctx, uuid.Must(uuid.NewV4()))
	assert.True(t, apperrors.IsNotFound(err))
}
