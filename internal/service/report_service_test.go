package service

import (
	"context"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
)

func seedSpending(t *testing.T, svc *Service) (groceries, entertainment *Category) {
	t.Helper()
	groceries = mustCategory(t, svc, "Groceries")
	entertainment = mustCategory(t, svc, "Entertainment")

	mustTransaction(t, svc, txFixture{amount: "100.0", kind: TransactionTypeExpense, date: date(2025, 1, 15), category: groceries})
	mustTransaction(t, svc, txFixture{amount: "200.0", kind: TransactionTypeExpense, date: date(2025, 1, 20), category: entertainment})
	return groceries, entertainment
}

func TestMonthlySpending(t *testing.T) {
	svc, _ := newTestService(t, nil)
	seedSpending(t, svc)

	report, err := svc.Report.MonthlySpending(context.Background(), date(2025, 1, 1), date(2025, 1, 31), nil)
	require.NoError(t, err)

	assert.True(t, dec("300").Equal(report.TotalSpending))
	require.Len(t, report.SpendingByCategory, 2, spew.Sdump(report))

	groceries := report.SpendingByCategory[0]
	assert.Equal(t, "Groceries", groceries.Category)
	assert.True(t, dec("100").Equal(groceries.Amount))
	assert.Equal(t, "33.33", groceries.Percentage.StringFixed(2))
	assert.Equal(t, 1, groceries.Count)

	entertainment := report.SpendingByCategory[1]
	assert.Equal(t, "Entertainment", entertainment.Category)
	assert.True(t, dec("200").Equal(entertainment.Amount))
	assert.Equal(t, "66.67", entertainment.Percentage.StringFixed(2))
	assert.Equal(t, 1, entertainment.Count)
}

func TestMonthlySpending_CategoryFilter(t *testing.T) {
	svc, _ := newTestService(t, nil)
	seedSpending(t, svc)

	report, err := svc.Report.MonthlySpending(context.Background(), date(2025, 1, 1), date(2025, 1, 31), []string{"Groceries"})
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(report.TotalSpending))
	require.Len(t, report.SpendingByCategory, 1)
	assert.True(t, dec("100").Equal(report.SpendingByCategory[0].Percentage))
}

func TestMonthlySpending_IncomeAndUncategorized(t *testing.T) {
	svc, _ := newTestService(t, nil)
	groceries, _ := seedSpending(t, svc)

	mustTransaction(t, svc, txFixture{amount: "5000", kind: TransactionTypeIncome, date: date(2025, 1, 2), category: groceries})
	mustTransaction(t, svc, txFixture{amount: "100", kind: TransactionTypeExpense, date: date(2025, 1, 3)})

	report, err := svc.Report.MonthlySpending(context.Background(), date(2025, 1, 1), date(2025, 1, 31), nil)
	require.NoError(t, err)

	assert.True(t, dec("400").Equal(report.TotalSpending), "uncategorized expenses count toward the total")
	require.Len(t, report.SpendingByCategory, 2)
	assert.Equal(t, 1, report.SpendingByCategory[0].Count, "income is not grouped")
	assert.Equal(t, "25.00", report.SpendingByCategory[0].Percentage.StringFixed(2))
}

func TestMonthlySpending_NoExpenses(t *testing.T) {
	svc, _ := newTestService(t, nil)
	salary := mustCategory(t, svc, "Salary")
	mustTransaction(t, svc, txFixture{amount: "10", kind: TransactionTypeIncome, date: date(2025, 1, 2), category: salary})

	report, err := svc.Report.MonthlySpending(context.Background(), date(2025, 1, 1), date(2025, 1, 31), nil)
	require.NoError(t, err)
	assert.True(t, report.TotalSpending.IsZero())
	assert.Empty(t, report.SpendingByCategory)
}

func TestMonthlySpending_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	seedSpending(t, svc)
	ctx := context.Background()

	first, err := svc.Report.MonthlySpending(ctx, date(2025, 1, 1), date(2025, 1, 31), nil)
	require.NoError(t, err)
	second, err := svc.Report.MonthlySpending(ctx, date(2025, 1, 1), date(2025, 1, 31), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMonthlyTotals(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	mustTransaction(t, svc, txFixture{amount: "10", kind: TransactionTypeExpense, date: date(2025, 1, 5)})
	mustTransaction(t, svc, txFixture{amount: "15", kind: TransactionTypeIncome, date: date(2025, 1, 25)})
	mustTransaction(t, svc, txFixture{amount: "7.5", kind: TransactionTypeExpense, date: date(2025, 3, 1)})

	report, err := svc.Report.MonthlyTotals(ctx, date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)

	require.Len(t, report.Totals, 2)
	assert.True(t, dec("25").Equal(report.Totals["2025-01"]), "income and expense are both summed")
	assert.True(t, dec("7.5").Equal(report.Totals["2025-03"]))
	assert.True(t, dec("32.5").Equal(report.Total))
}

func TestMonthlyTotals_Empty(t *testing.T) {
	svc, _ := newTestService(t, nil)

	report, err := svc.Report.MonthlyTotals(context.Background(), date(2025, 1, 1), date(2025, 12, 31))
	require.NoError(t, err)
	assert.NotNil(t, report.Totals)
	assert.Empty(t, report.Totals)
	assert.True(t, report.Total.IsZero())
}

func TestCategoryTotals(t *testing.T) {
	svc, _ := newTestService(t, nil)
	groceries, entertainment := seedSpending(t, svc)

	mustTransaction(t, svc, txFixture{amount: "50", kind: TransactionTypeIncome, date: date(2025, 1, 16), category: groceries})
	mustTransaction(t, svc, txFixture{amount: "999", kind: TransactionTypeExpense, date: date(2025, 1, 17)})

	report, err := svc.Report.CategoryTotals(context.Background(), date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)

	require.Len(t, report.Totals, 2)
	assert.True(t, dec("150").Equal(report.Totals[groceries.Name]))
	assert.True(t, dec("200").Equal(report.Totals[entertainment.Name]))
	assert.True(t, dec("350").Equal(report.Total), "uncategorized transactions are skipped")
}

func TestCategoryTrends_ZeroFilled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	groceries, entertainment := seedSpending(t, svc)
	mustTransaction(t, svc, txFixture{amount: "30", kind: TransactionTypeExpense, date: date(2025, 3, 10), category: groceries})

	trends, err := svc.Report.CategoryTrends(context.Background(), date(2024, 12, 20), date(2025, 3, 5), nil)
	require.NoError(t, err)

	var months []string
	for _, trend := range trends.Trends {
		months = append(months, trend.Month)
		assert.Len(t, trend.Categories, 2, "every category is present in %s", trend.Month)
	}
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-02", "2025-03"}, months)

	assert.True(t, trends.Trends[0].Categories[groceries.Name].IsZero())
	assert.True(t, dec("100").Equal(trends.Trends[1].Categories[groceries.Name]))
	assert.True(t, dec("200").Equal(trends.Trends[1].Categories[entertainment.Name]))
	assert.True(t, trends.Trends[2].Categories[entertainment.Name].IsZero())
	assert.True(t, trends.Trends[3].Categories[groceries.Name].IsZero(), "2025-03-10 is after the end date")
}

func TestCategoryTrends_Filter(t *testing.T) {
	svc, _ := newTestService(t, nil)
	seedSpending(t, svc)

	trends, err := svc.Report.CategoryTrends(context.Background(), date(2025, 1, 1), date(2025, 2, 28), []string{"Entertainment"})
	require.NoError(t, err)

	require.Len(t, trends.Trends, 2)
	for _, trend := range trends.Trends {
		assert.Equal(t, []string{"Entertainment"}, keys(trend.Categories))
	}
}

func TestReports_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	start, end := date(2025, 2, 1), date(2025, 1, 1)

	_, err := svc.Report.MonthlySpending(ctx, start, end, nil)
	assert.True(t, apperrors.IsValidation(err))
	_, err = svc.Report.MonthlyTotals(ctx, start, end)
	assert.True(t, apperrors.IsValidation(err))
	_, err = svc.Report.CategoryTotals(ctx, start, end)
	assert.True(t, apperrors.IsValidation(err))
	_, err = svc.Report.CategoryTrends(ctx, time.Time{}, end, nil)
	assert.True(t, apperrors.IsValidation(err))
}

func keys(m map[string]decimal.Decimal) []string {
	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}
