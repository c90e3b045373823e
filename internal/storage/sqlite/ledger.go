package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/tripbudget/internal/storage"
)

// TripLedger reads a trip, its expenses and its payments in one transaction.
func (s *SQLiteStore) TripLedger(ctx context.Context, tripID string) (*storage.Ledger, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	trip, err := getTrip(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := listExpenses(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}
	payments, err := listPayments(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}
	return &storage.Ledger{Trip: trip, Expenses: expenses, Payments: payments}, nil
}
