package calculator

import (
	"math"
	"strings"

	"github.com/mmynk/tripbudget/internal/models"
)

// ValidateExpense checks that an expense can be split: a finite,
// non-negative amount, a payer and no blank participant names.
func ValidateExpense(e *models.Expense) error {
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return &ValidationError{ID: e.ID, Field: "amount", Reason: "must be a finite number"}
	}
	if e.Amount < 0 {
		return &ValidationError{ID: e.ID, Field: "amount", Reason: "cannot be negative"}
	}
	if strings.TrimSpace(e.Payer) == "" {
		return &ValidationError{ID: e.ID, Field: "payer", Reason: "must not be empty"}
	}
	for _, p := range e.Participants {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{ID: e.ID, Field: "participants", Reason: "names must not be empty"}
		}
	}
	return nil
}

// ValidatePayment checks that a payment moves a positive amount between two
// different members.
func ValidatePayment(p *models.Payment) error {
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) || p.Amount <= 0 {
		return &ValidationError{ID: p.ID, Field: "amount", Reason: "must be a positive number"}
	}
	if strings.TrimSpace(p.From) == "" {
		return &ValidationError{ID: p.ID, Field: "from", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.To) == "" {
		return &ValidationError{ID: p.ID, Field: "to", Reason: "must not be empty"}
	}
	if p.From == p.To {
		return &ValidationError{ID: p.ID, Field: "to", Reason: "must differ from payer"}
	}
	return nil
}
