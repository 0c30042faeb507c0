// Package pdf renders report output as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/carson-networks/budget-tracker/internal/service"
)

const (
	margin       = 15.0
	lineHeight   = 8.0
	titleSize    = 16.0
	headingSize  = 14.0
	bodySize     = 12.0
	periodLayout = "January 2, 2006"
)

var breakdownColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"Category", 80, "L"},
	{"Amount", 40, "R"},
	{"Percentage", 35, "R"},
	{"Count", 25, "R"},
}

type Formatter struct {
	now func() time.Time
}

func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// RenderSpendingReport renders the per-category spending breakdown.
func (f *Formatter) RenderSpendingReport(report service.MonthlyReport) ([]byte, error) {
	doc := f.newDocument()

	f.header(doc, "Monthly Spending Report", report.Start, report.End)

	doc.SetFont("Helvetica", "B", headingSize)
	doc.CellFormat(0, lineHeight, "Summary", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", bodySize)
	doc.CellFormat(0, lineHeight, "Total Spending: "+money(report.TotalSpending.StringFixed(2)), "", 1, "L", false, 0, "")
	doc.Ln(lineHeight)

	doc.SetFont("Helvetica", "B", headingSize)
	doc.CellFormat(0, lineHeight, "Category Breakdown", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", bodySize)
	for _, col := range breakdownColumns {
		doc.CellFormat(col.width, lineHeight, col.header, "B", 0, col.align, false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", bodySize)
	for _, entry := range report.SpendingByCategory {
		cells := []string{
			entry.Category,
			money(entry.Amount.StringFixed(2)),
			entry.Percentage.StringFixed(1) + "%",
			strconv.Itoa(entry.Count),
		}
		for i, col := range breakdownColumns {
			doc.CellFormat(col.width, lineHeight, cells[i], "", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}

	return output(doc)
}

// RenderTotals renders one line per key of report in sorted order, then the
// grand total.
func (f *Formatter) RenderTotals(title string, report service.TotalsReport) ([]byte, error) {
	doc := f.newDocument()

	f.header(doc, title, report.Start, report.End)

	keys := make([]string, 0, len(report.Totals))
	for key := range report.Totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc.SetFont("Helvetica", "", bodySize)
	for _, key := range keys {
		amount := report.Totals[key]
		line := fmt.Sprintf("%s: %s", key, money(amount.StringFixed(2)))
		doc.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}

	doc.Ln(lineHeight)
	doc.SetFont("Helvetica", "B", bodySize)
	doc.CellFormat(0, lineHeight, "Total Spending: "+money(report.Total.StringFixed(2)), "", 1, "L", false, 0, "")

	return output(doc)
}

func (f *Formatter) newDocument() *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin+lineHeight)

	generated := "Generated on " + f.now().Format(periodLayout)
	doc.SetFooterFunc(func() {
		doc.SetY(-margin)
		doc.SetFont("Helvetica", "I", 8)
		doc.CellFormat(0, lineHeight, generated, "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	return doc
}

func (f *Formatter) header(doc *fpdf.Fpdf, title string, start, end time.Time) {
	doc.SetFont("Helvetica", "B", titleSize)
	doc.CellFormat(0, lineHeight*1.5, title, "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", bodySize)
	period := fmt.Sprintf("Period: %s - %s", start.Format(periodLayout), end.Format(periodLayout))
	doc.CellFormat(0, lineHeight, period, "", 1, "L", false, 0, "")
	doc.Ln(lineHeight)
}

func money(amount string) string {
	return "$" + amount
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
