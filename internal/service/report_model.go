package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySpending is one category's share of a spending report.
type MonthlySpending struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Count      int
}

// MonthlyReport lists per-category spending in the order categories were
// first seen in the period.
type MonthlyReport struct {
	Start              time.Time
	End                time.Time
	TotalSpending      decimal.Decimal
	SpendingByCategory []MonthlySpending
}

// TotalsReport maps a key (a "YYYY-MM" month or a category name) to the sum
// of its transactions.
type TotalsReport struct {
	Start  time.Time
	End    time.Time
	Totals map[string]decimal.Decimal
	Total  decimal.Decimal
}

// MonthlyTrend maps every category of a trend report to its amount in Month.
type MonthlyTrend struct {
	Month      string
	Categories map[string]decimal.Decimal
}

type CategoryTrends struct {
	Trends []MonthlyTrend
}
