package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// RangeInput is the Huma input shared by every report.
type RangeInput struct {
	StartDate  string   `query:"startDate" doc:"First day of the period (2006-01-02), inclusive"`
	EndDate    string   `query:"endDate" doc:"Last day of the period (2006-01-02), inclusive"`
	Categories []string `query:"categories" doc:"Category names to include. Empty includes everything"`
}

func (in *RangeInput) dates() (time.Time, time.Time, error) {
	start, err := apierror.ParseDate("startDate", in.StartDate)
	if err != nil {
		return start, time.Time{}, err
	}
	end, err := apierror.ParseDate("endDate", in.EndDate)
	return start, end, err
}

// CategorySpending is one category's share of a spending report.
type CategorySpending struct {
	Category   string `json:"category" doc:"Category name"`
	Amount     string `json:"amount" doc:"Decimal spending in the category"`
	Percentage string `json:"percentage" doc:"Share of total spending, two decimal places"`
	Count      int    `json:"count" doc:"Number of expenses"`
}

// SpendingReport is the API response model for the spending report.
type SpendingReport struct {
	StartDate          string             `json:"startDate"`
	EndDate            string             `json:"endDate"`
	TotalSpending      string             `json:"totalSpending" doc:"Decimal sum of every expense in the period"`
	SpendingByCategory []CategorySpending `json:"spendingByCategory"`
}

// TotalsReport is the API response model for month and category totals.
type TotalsReport struct {
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Totals    map[string]string `json:"totals" doc:"Decimal sum per key"`
	Total     string            `json:"total"`
}

// MonthlyTrend is one month of a trend report.
type MonthlyTrend struct {
	Month      string            `json:"month" doc:"Month as 2006-01"`
	Categories map[string]string `json:"categories" doc:"Decimal amount per category"`
}

func toSpendingReport(r service.MonthlyReport) SpendingReport {
	resp := SpendingReport{
		StartDate:          apierror.FormatDate(r.Start),
		EndDate:            apierror.FormatDate(r.End),
		TotalSpending:      r.TotalSpending.StringFixed(2),
		SpendingByCategory: make([]CategorySpending, len(r.SpendingByCategory)),
	}
	for i, entry := range r.SpendingByCategory {
		resp.SpendingByCategory[i] = CategorySpending{
			Category:   entry.Category,
			Amount:     entry.Amount.StringFixed(2),
			Percentage: entry.Percentage.StringFixed(2),
			Count:      entry.Count,
		}
	}
	return resp
}

func toTotalsReport(r service.TotalsReport) TotalsReport {
	return TotalsReport{
		StartDate: apierror.FormatDate(r.Start),
		EndDate:   apierror.FormatDate(r.End),
		Totals:    fixedAmounts(r.Totals),
		Total:     r.Total.StringFixed(2),
	}
}

func fixedAmounts(in map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(in))
	for key, amount := range in {
		out[key] = amount.StringFixed(2)
	}
	return out
}
