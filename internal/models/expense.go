package models

import (
	"strings"
	"time"
)

// Category classifies an expense for the budget breakdown.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryAccommodation Category = "Accommodation"
	CategoryActivities    Category = "Activities"
	CategoryGeneral       Category = "General"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryActivities,
	CategoryGeneral,
}

var categoryLabels = map[Category]string{
	CategoryFood:          "Essen",
	CategoryTransport:     "Transport",
	CategoryAccommodation: "Unterkunft",
	CategoryActivities:    "Aktivitäten",
	CategoryGeneral:       "Sonstiges",
}

// ParseCategory maps a stored category key to a Category.
// Unrecognized keys fall back to CategoryGeneral and ok is false.
func ParseCategory(s string) (c Category, ok bool) {
	key := Category(strings.TrimSpace(s))
	if _, known := categoryLabels[key]; known {
		return key, true
	}
	return CategoryGeneral, false
}

// Label returns the display label shown in budget breakdowns.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryGeneral]
}

// Expense represents a single payment made by one member and split among
// participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	Description string

	// Amount is the total paid. Must be non-negative.
	Amount float64

	// Payer is the member name who paid.
	Payer string

	// Participants are the member names splitting the cost.
	// Empty means the payer alone carries it.
	Participants []string

	Category Category

	// Date is when the expense happened. Only used for ordering.
	Date time.Time

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// SplitAmong returns the effective participant set: participants with
// duplicates removed in first-seen order, or just the payer when empty.
func (e *Expense) SplitAmong() []string {
	if len(e.Participants) == 0 {
		return []string{e.Payer}
	}
	seen := make(map[string]bool, len(e.Participants))
	people := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		if seen[p] {
			continue
		}
		seen[p] = true
		people = append(people, p)
	}
	return people
}

// TrimNames returns a copy of names with surrounding whitespace removed from
// each. Blank names stay in place so validation can still reject them.
func TrimNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
	}
	return out
}
