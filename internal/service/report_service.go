package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

const monthLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// ReportService aggregates the transactions of a date range. Every report is
// computed fresh from storage and has no side effects.
type ReportService struct {
	storage *storage.Storage
}

func NewReportService(store *storage.Storage) *ReportService {
	return &ReportService{storage: store}
}

func (s *ReportService) load(ctx context.Context, report string, start, end time.Time) ([]*transaction.Transaction, time.Time, time.Time, error) {
	start, end, err := validateDateRange(start, end)
	if err != nil {
		return nil, start, end, err
	}

	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues(report))
	defer timer.ObserveDuration()

	rows, err := s.storage.Read().Transactions.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, start, end, fmt.Errorf("%s: find transactions: %w", report, err)
	}
	return rows, start, end, nil
}

// filterByCategory keeps categorized transactions whose category name is in
// names. An empty names keeps everything, uncategorized included.
func filterByCategory(rows []*transaction.Transaction, names []string) []*transaction.Transaction {
	if len(names) == 0 {
		return rows
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var filtered []*transaction.Transaction
	for _, row := range rows {
		if !row.CategoryID.Valid {
			continue
		}
		if _, ok := wanted[row.CategoryName]; ok {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// MonthlySpending breaks down expense spending by category. The total counts
// every expense in the filtered set, uncategorized ones included; only
// categorized expenses get an entry. Entries follow the order in which their
// category first appears.
func (s *ReportService) MonthlySpending(ctx context.Context, start, end time.Time, categories []string) (*MonthlyReport, error) {
	rows, start, end, err := s.load(ctx, "monthly_spending", start, end)
	if err != nil {
		return nil, err
	}
	rows = filterByCategory(rows, categories)

	total := decimal.Zero
	byCategory := make(map[string]*MonthlySpending)
	var order []string

	for _, row := range rows {
		if row.Type != transaction.TransactionTypeExpense {
			continue
		}
		total = total.Add(row.Amount)

		if !row.CategoryID.Valid {
			continue
		}
		entry, ok := byCategory[row.CategoryName]
		if !ok {
			entry = &MonthlySpending{Category: row.CategoryName, Amount: decimal.Zero}
			byCategory[row.CategoryName] = entry
			order = append(order, row.CategoryName)
		}
		entry.Amount = entry.Amount.Add(row.Amount)
		entry.Count++
	}

	report := &MonthlyReport{
		Start:              start,
		End:                end,
		TotalSpending:      total,
		SpendingByCategory: make([]MonthlySpending, 0, len(order)),
	}
	for _, name := range order {
		entry := byCategory[name]
		entry.Percentage = decimal.Zero
		if total.IsPositive() {
			entry.Percentage = entry.Amount.Mul(hundred).Div(total)
		}
		report.SpendingByCategory = append(report.SpendingByCategory, *entry)
	}

	return report, nil
}

// MonthlyTotals sums every transaction, income and expense alike, per
// "YYYY-MM" month.
func (s *ReportService) MonthlyTotals(ctx context.Context, start, end time.Time) (*TotalsReport, error) {
	rows, start, end, err := s.load(ctx, "monthly_totals", start, end)
	if err != nil {
		return nil, err
	}

	report := &TotalsReport{
		Start:  start,
		End:    end,
		Totals: make(map[string]decimal.Decimal),
		Total:  decimal.Zero,
	}
	for _, row := range rows {
		month := row.Date.Format(monthLayout)
		report.Totals[month] = report.Totals[month].Add(row.Amount)
		report.Total = report.Total.Add(row.Amount)
	}

	return report, nil
}

// CategoryTotals sums every categorized transaction, income and expense
// alike, per category name.
func (s *ReportService) CategoryTotals(ctx context.Context, start, end time.Time) (*TotalsReport, error) {
	rows, start, end, err := s.load(ctx, "category_totals", start, end)
	if err != nil {
		return nil, err
	}

	report := &TotalsReport{
		Start:  start,
		End:    end,
		Totals: make(map[string]decimal.Decimal),
		Total:  decimal.Zero,
	}
	for _, row := range rows {
		if !row.CategoryID.Valid {
			continue
		}
		report.Totals[row.CategoryName] = report.Totals[row.CategoryName].Add(row.Amount)
		report.Total = report.Total.Add(row.Amount)
	}

	return report, nil
}

// CategoryTrends returns one entry per calendar month from start's month
// through end's month. Each entry holds every category seen in the filtered
// transactions, with zero for months in which it has none.
func (s *ReportService) CategoryTrends(ctx context.Context, start, end time.Time, categories []string) (*CategoryTrends, error) {
	rows, start, end, err := s.load(ctx, "category_trends", start, end)
	if err != nil {
		return nil, err
	}
	rows = filterByCategory(rows, categories)

	byMonth := make(map[string]map[string]decimal.Decimal)
	seen := make(map[string]struct{})
	for _, row := range rows {
		if !row.CategoryID.Valid {
			continue
		}
		month := row.Date.Format(monthLayout)
		if byMonth[month] == nil {
			byMonth[month] = make(map[string]decimal.Decimal)
		}
		byMonth[month][row.CategoryName] = byMonth[month][row.CategoryName].Add(row.Amount)
		seen[row.CategoryName] = struct{}{}
	}

	trends := &CategoryTrends{}
	for _, month := range monthsBetween(start, end) {
		amounts := make(map[string]decimal.Decimal, len(seen))
		for name := range seen {
			amounts[name] = decimal.Zero
			if amount, ok := byMonth[month][name]; ok {
				amounts[name] = amount
			}
		}
		trends.Trends = append(trends.Trends, MonthlyTrend{Month: month, Categories: amounts})
	}

	return trends, nil
}

// monthsBetween lists "YYYY-MM" labels from start's month through end's month.
func monthsBetween(start, end time.Time) []string {
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []string
	for !current.After(last) {
		months = append(months, current.Format(monthLayout))
		current = current.AddDate(0, 1, 0)
	}
	return months
}
