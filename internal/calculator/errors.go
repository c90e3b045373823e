package calculator

import "fmt"

// ValidationError reports an expense or payment that cannot take part in a
// balance calculation.
type ValidationError struct {
	// ID is the expense or payment ID, empty when not yet assigned.
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s for %s: %s", e.Field, e.ID, e.Reason)
}

// ConsistencyError reports balances that did not settle to zero, meaning the
// input violated the zero-sum invariant (e.g. a partial expense set).
type ConsistencyError struct {
	UnmatchedDebt   float64
	UnmatchedCredit float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("balances do not net to zero: %.2f unmatched debt, %.2f unmatched credit",
		e.UnmatchedDebt, e.UnmatchedCredit)
}
