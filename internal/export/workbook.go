// Package export renders a trip's budget as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/tripbudget/internal/calculator"
	"github.com/mmynk/tripbudget/internal/models"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SummarySheet     = "Summary"
	ExpensesSheet    = "Expenses"
	BalancesSheet    = "Balances"
	SettlementsSheet = "Settlements"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename returns the download name for a trip's workbook.
func Filename(trip *models.Trip, now time.Time) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(trip.Title, "_"), "_")
	if name == "" {
		name = "Trip"
	}
	return fmt.Sprintf("%s_Budget_%s.xlsx", name, now.Format("2006-01-02"))
}

// TripWorkbook builds a workbook with a summary, the expense list, member
// balances (recorded payments included) and the payments still needed to
// settle up. displayCap bounds the utilization percentage shown on the summary
// sheet; zero or less means calculator.DefaultDisplayCap. The caller must
// Close the returned file.
func TripWorkbook(trip *models.Trip, expenses []models.Expense, payments []models.Payment, displayCap int) (*excelize.File, error) {
	if displayCap <= 0 {
		displayCap = calculator.DefaultDisplayCap
	}
	balances, err := calculator.ComputeBalances(expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}
	balances, err = calculator.ApplyPayments(balances, payments)
	if err != nil {
		return nil, fmt.Errorf("failed to apply payments: %w", err)
	}
	instructions, err := calculator.Settle(balances)
	if err != nil {
		return nil, fmt.Errorf("failed to settle balances: %w", err)
	}

	f := excelize.NewFile()
	w := &writer{f: f}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	w.header = header

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{ExpensesSheet, BalancesSheet, SettlementsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	w.summary(trip, expenses, displayCap)
	w.expenses(expenses)
	w.balances(expenses, balances)
	w.settlements(instructions)

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// Write renders the trip workbook to out.
func Write(out io.Writer, trip *models.Trip, expenses []models.Expense, payments []models.Payment, displayCap int) error {
	f, err := TripWorkbook(trip, expenses, payments, displayCap)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writer remembers the first excelize error so sheet builders stay linear.
type writer struct {
	f      *excelize.File
	header int
	err    error
}

func (w *writer) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
}

func (w *writer) headerRow(sheet string, row int, titles ...any) {
	w.row(sheet, row, titles...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(titles), row)
	if err := w.f.SetCellStyle(sheet, first, last, w.header); err != nil {
		w.err = fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
}

func (w *writer) widths(sheet, last string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(sheet, "A", last, width); err != nil {
		w.err = fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}
}

func (w *writer) summary(trip *models.Trip, expenses []models.Expense, displayCap int) {
	u := calculator.BudgetUtilization(expenses, trip.Budget)

	w.headerRow(SummarySheet, 1, "Trip", trip.Title)
	w.row(SummarySheet, 2, "Destination", trip.Destination)
	w.row(SummarySheet, 3, "Budget", trip.Budget)
	w.row(SummarySheet, 4, "Spent", u.Spent)
	if u.Defined {
		w.row(SummarySheet, 5, "Used", fmt.Sprintf("%d%%", u.DisplayPercent(displayCap)))
	} else {
		w.row(SummarySheet, 5, "Used", "no budget")
	}

	w.headerRow(SummarySheet, 7, "Category", "Total")
	for i, ct := range calculator.CategoryTotals(expenses) {
		w.row(SummarySheet, 8+i, ct.Category.Label(), ct.Total)
	}
	w.widths(SummarySheet, "B", 20)
}

func (w *writer) expenses(expenses []models.Expense) {
	w.headerRow(ExpensesSheet, 1, "Date", "Description", "Category", "Paid By", "Split With", "Amount")
	for i := range expenses {
		e := &expenses[i]
		w.row(ExpensesSheet, 2+i,
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Category.Label(),
			e.Payer,
			strings.Join(e.SplitAmong(), ", "),
			e.Amount,
		)
	}
	w.widths(ExpensesSheet, "F", 18)
}

func (w *writer) balances(expenses []models.Expense, balances []models.Balance) {
	paid := make(map[string]float64)
	for _, pt := range calculator.PaidTotals(expenses) {
		paid[pt.Person] = pt.Total
	}

	w.headerRow(BalancesSheet, 1, "Person", "Paid", "Net Balance")
	for i, b := range balances {
		w.row(BalancesSheet, 2+i, b.Person, paid[b.Person], b.Net)
	}
	w.widths(BalancesSheet, "C", 15)
}

func (w *writer) settlements(instructions []models.SettlementInstruction) {
	w.headerRow(SettlementsSheet, 1, "From", "To", "Amount")
	for i, in := range instructions {
		w.row(SettlementsSheet, 2+i, in.From, in.To, in.Amount)
	}
	w.widths(SettlementsSheet, "C", 15)
}
