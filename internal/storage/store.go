// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripbudget/internal/models"
)

// ErrNotFound is wrapped by every store error for a missing trip, expense or
// payment.
var ErrNotFound = errors.New("not found")

// Ledger is everything recorded for one trip, read as a single snapshot.
type Ledger struct {
	Trip     *models.Trip
	Expenses []models.Expense
	Payments []models.Payment
}

// Store defines the interface for trip, expense and payment storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Each method reads a consistent snapshot on its own; separate calls may see
// different states. Use TripLedger when expenses and payments must agree.
type Store interface {
	// CreateTrip persists a new trip. ID and CreatedAt are filled in when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip and its members.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// AddTripMembers adds names to the trip's member list, skipping existing ones.
	AddTripMembers(ctx context.Context, tripID string, names []string) error

	// DeleteTrip removes a trip with all of its expenses and payments.
	DeleteTrip(ctx context.Context, tripID string) error

	// CreateExpense persists a new expense. ID and CreatedAt are filled in when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByTrip returns a trip's expenses, newest first.
	ListExpensesByTrip(ctx context.Context, tripID string) ([]models.Expense, error)

	// DeleteExpense removes an expense. Expenses are never edited in place.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreatePayment persists a recorded payment between two members.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByTrip returns a trip's payments, oldest first.
	ListPaymentsByTrip(ctx context.Context, tripID string) ([]models.Payment, error)

	// TripLedger returns a trip with its expenses (newest first) and payments
	// (oldest first), all read from the same snapshot.
	TripLedger(ctx context.Context, tripID string) (*Ledger, error)

	// DeletePayment removes a recorded payment.
	DeletePayment(ctx context.Context, paymentID string) error

	// Close releases any resources held by the store.
	Close() error
}
