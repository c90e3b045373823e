package models

// Balance is one person's net position across a trip's expenses.
type Balance struct {
	Person string
	// Net is positive when the group owes this person, negative when they owe.
	Net float64
}

// SettlementInstruction is a recommended payment from a debtor to a creditor.
type SettlementInstruction struct {
	From   string
	To     string
	Amount float64
}

// Payment represents a recorded transfer between trip members to clear debts.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// TripID is the trip this payment belongs to.
	TripID string

	// From is the member who paid (debtor settling up).
	From string

	// To is the member who received the payment (creditor being paid).
	To string

	Amount float64

	// Note is an optional description for the payment.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
