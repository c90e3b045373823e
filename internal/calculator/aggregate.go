package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/tripbudget/internal/models"
)

// DefaultDisplayCap is the highest budget percentage shown to users.
const DefaultDisplayCap = 999

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category models.Category
	Total    float64
}

// PersonTotal is the amount one person paid out.
type PersonTotal struct {
	Person string
	Total  float64
}

// Utilization compares the amount spent against the trip budget.
type Utilization struct {
	Spent  float64
	Budget float64
	// Ratio is Spent / Budget, unclamped. Zero when Defined is false.
	Ratio float64
	// Defined is false when the trip has no positive budget.
	Defined bool
}

// DisplayPercent returns the ratio as a whole percentage clamped to
// [0, maxPercent]. An undefined ratio shows as 0.
func (u Utilization) DisplayPercent(maxPercent int) int {
	if !u.Defined {
		return 0
	}
	pct := math.Floor(u.Ratio * 100)
	if pct > float64(maxPercent) {
		return maxPercent
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// TotalSpent sums every expense amount.
func TotalSpent(expenses []models.Expense) float64 {
	var total float64
	for i := range expenses {
		total += expenses[i].Amount
	}
	return total
}

// CategoryTotals sums expenses per category in display order, leaving out
// categories with nothing spent. Unknown categories count as General.
func CategoryTotals(expenses []models.Expense) []CategoryTotal {
	sums := make(map[models.Category]float64, len(models.Categories))
	for i := range expenses {
		c, _ := models.ParseCategory(string(expenses[i].Category))
		sums[c] += expenses[i].Amount
	}

	var totals []CategoryTotal
	for _, c := range models.Categories {
		if sums[c] > 0 {
			totals = append(totals, CategoryTotal{Category: c, Total: sums[c]})
		}
	}
	return totals
}

// PaidTotals sums what each payer paid, largest first. Ties keep the order
// in which payers first appear.
func PaidTotals(expenses []models.Expense) []PersonTotal {
	index := make(map[string]int)
	var totals []PersonTotal
	for i := range expenses {
		e := &expenses[i]
		n, ok := index[e.Payer]
		if !ok {
			n = len(totals)
			index[e.Payer] = n
			totals = append(totals, PersonTotal{Person: e.Payer})
		}
		totals[n].Total += e.Amount
	}
	sort.SliceStable(totals, func(a, b int) bool { return totals[a].Total > totals[b].Total })
	return totals
}

// BudgetUtilization reports how much of budget the expenses use up.
func BudgetUtilization(expenses []models.Expense, budget float64) Utilization {
	u := Utilization{Spent: TotalSpent(expenses), Budget: budget}
	if budget > 0 {
		u.Ratio = u.Spent / budget
		u.Defined = true
	}
	return u
}

// TripExpenses returns the expenses of one trip, newest first.
func TripExpenses(expenses []models.Expense, tripID string) []models.Expense {
	var out []models.Expense
	for i := range expenses {
		if expenses[i].TripID == tripID {
			out = append(out, expenses[i])
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}
