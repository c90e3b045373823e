package models

import "time"

// Trip represents a group trip whose members share expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Title is the display name of the trip (e.g., "Lisbon 2026").
	Title string

	Description string
	Destination string

	// Organizer is the member name that created the trip.
	Organizer string

	// Budget is the planned total spend. Zero means no budget was set.
	Budget float64

	// Members is the list of member names on this trip.
	// Expense payers and participants are added automatically.
	Members []string

	StartDate time.Time
	EndDate   time.Time

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// HasMember reports whether name is on the trip's member list.
func (t *Trip) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}
