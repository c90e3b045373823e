package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/tripbudget/internal/models"
	"github.com/mmynk/tripbudget/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tripbudget-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Trips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID and CreatedAt", func(t *testing.T) {
		trip := &models.Trip{Title: "Lisbon", Budget: 1200, Members: []string{"Alice", "Bob"}}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetTrip retrieves complete trip", func(t *testing.T) {
		start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		original := &models.Trip{
			Title:       "Alps",
			Description: "Hiking week",
			Destination: "Chamonix",
			Organizer:   "Charlie",
			Budget:      2500,
			Members:     []string{"Charlie", "Diana", "Eve"},
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 7),
		}
		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if !reflect.DeepEqual(got, original) {
			t.Errorf("GetTrip mismatch:\n got %+v\nwant %+v", got, original)
		}
	})

	t.Run("GetTrip returns ErrNotFound for nonexistent trip", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddTripMembers appends new names only", func(t *testing.T) {
		trip := &models.Trip{Title: "Paris", Members: []string{"Alice"}}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if err := store.AddTripMembers(ctx, trip.ID, []string{"Bob", "Alice", "Carol", "Bob"}); err != nil {
			t.Fatalf("AddTripMembers failed: %v", err)
		}
		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if want := []string{"Alice", "Bob", "Carol"}; !reflect.DeepEqual(got.Members, want) {
			t.Errorf("Members = %v, want %v", got.Members, want)
		}
	})

	t.Run("AddTripMembers on missing trip", func(t *testing.T) {
		err := store.AddTripMembers(ctx, "missing", []string{"Bob"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListTrips returns all trips", func(t *testing.T) {
		trips, err := store.ListTrips(ctx)
		if err != nil {
			t.Fatalf("ListTrips failed: %v", err)
		}
		if len(trips) != 3 {
			t.Errorf("Expected 3 trips, got %d", len(trips))
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Title: "Rome", Members: []string{"A", "B", "C"}}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	day := func(d int) time.Time { return time.Date(2026, 5, d, 18, 30, 0, 0, time.UTC) }
	dinner := &models.Expense{
		TripID:       trip.ID,
		Description:  "Dinner",
		Amount:       90,
		Payer:        "A",
		Participants: []string{"C", "A", "B"},
		Category:     models.CategoryFood,
		Date:         day(2),
	}
	taxi := &models.Expense{
		TripID:      trip.ID,
		Description: "Taxi",
		Amount:      24,
		Payer:       "B",
		Category:    models.CategoryTransport,
		Date:        day(3),
	}

	for _, e := range []*models.Expense{dinner, taxi} {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if e.ID == "" || e.CreatedAt == 0 {
			t.Fatalf("Expected ID and CreatedAt to be set, got %+v", e)
		}
	}

	t.Run("GetExpense keeps participant order", func(t *testing.T) {
		got, err := store.GetExpense(ctx, dinner.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !reflect.DeepEqual(got, dinner) {
			t.Errorf("GetExpense mismatch:\n got %+v\nwant %+v", got, dinner)
		}
	})

	t.Run("ListExpensesByTrip returns newest first", func(t *testing.T) {
		got, err := store.ListExpensesByTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListExpensesByTrip failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(got))
		}
		if got[0].ID != taxi.ID || got[1].ID != dinner.ID {
			t.Errorf("Unexpected order: %s, %s", got[0].Description, got[1].Description)
		}
		if len(got[0].Participants) != 0 {
			t.Errorf("Expected taxi to have no participants, got %v", got[0].Participants)
		}
		if want := []string{"C", "A", "B"}; !reflect.DeepEqual(got[1].Participants, want) {
			t.Errorf("Participants = %v, want %v", got[1].Participants, want)
		}
	})

	t.Run("CreateExpense defaults category", func(t *testing.T) {
		e := &models.Expense{TripID: trip.ID, Description: "Misc", Amount: 3, Payer: "C"}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if e.Category != models.CategoryGeneral {
			t.Errorf("Category = %q, want General", e.Category)
		}
		if e.Date.IsZero() {
			t.Error("Expected Date to default to creation time")
		}
	})

	t.Run("CreateExpense rejects unknown trip", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{TripID: "missing", Amount: 1, Payer: "A"})
		if err == nil {
			t.Error("Expected foreign key error, got nil")
		}
	})

	t.Run("DeleteExpense removes expense", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, dinner.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, dinner.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteExpense(ctx, dinner.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStore_Payments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Title: "Oslo"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	first := &models.Payment{TripID: trip.ID, From: "B", To: "A", Amount: 30, Note: "cash", CreatedAt: 100}
	second := &models.Payment{TripID: trip.ID, From: "C", To: "A", Amount: 10, CreatedAt: 200}
	for _, p := range []*models.Payment{second, first} {
		if err := store.CreatePayment(ctx, p); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
	}

	got, err := store.ListPaymentsByTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip failed: %v", err)
	}
	if want := []models.Payment{*first, *second}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListPaymentsByTrip = %+v, want %+v", got, want)
	}

	if err := store.DeletePayment(ctx, first.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	if err := store.DeletePayment(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_DeleteTripCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Title: "Berlin", Members: []string{"A", "B"}}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	expense := &models.Expense{TripID: trip.ID, Amount: 10, Payer: "A", Participants: []string{"A", "B"}}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if err := store.CreatePayment(ctx, &models.Payment{TripID: trip.ID, From: "B", To: "A", Amount: 5}); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	if err := store.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("DeleteTrip failed: %v", err)
	}

	if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected expense to be deleted, got %v", err)
	}
	payments, err := store.ListPaymentsByTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByTrip failed: %v", err)
	}
	if len(payments) != 0 {
		t.Errorf("Expected payments to be deleted, got %d", len(payments))
	}
	if err := store.DeleteTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	trip := &models.Trip{Title: "Reopen"}
	if err := store.CreateTrip(context.Background(), trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	store.Close()

	store, err = New(dbPath)
	if err != nil {
		t.Fatalf("second New failed: %v", err)
	}
	defer store.Close()
	if _, err := store.GetTrip(context.Background(), trip.ID); err != nil {
		t.Errorf("GetTrip after reopen failed: %v", err)
	}
}

func TestSQLiteStore_TripLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip := &models.Trip{Title: "Porto", Budget: 500, Members: []string{"A", "B"}}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	for _, e := range []*models.Expense{
		{TripID: trip.ID, Amount: 40, Payer: "A", Participants: []string{"A", "B"}, Date: time.Unix(1_000, 0).UTC()},
		{TripID: trip.ID, Amount: 20, Payer: "B", Participants: []string{"A", "B"}, Date: time.Unix(2_000, 0).UTC()},
	} {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}
	if err := store.CreatePayment(ctx, &models.Payment{TripID: trip.ID, From: "B", To: "A", Amount: 10}); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	ledger, err := store.TripLedger(ctx, trip.ID)
	if err != nil {
		t.Fatalf("TripLedger failed: %v", err)
	}

	wantTrip, _ := store.GetTrip(ctx, trip.ID)
	if !reflect.DeepEqual(ledger.Trip, wantTrip) {
		t.Errorf("Trip = %+v, want %+v", ledger.Trip, wantTrip)
	}
	wantExpenses, _ := store.ListExpensesByTrip(ctx, trip.ID)
	if !reflect.DeepEqual(ledger.Expenses, wantExpenses) {
		t.Errorf("Expenses = %+v, want %+v", ledger.Expenses, wantExpenses)
	}
	if len(ledger.Expenses) != 2 || ledger.Expenses[0].Amount != 20 {
		t.Errorf("expected newest expense first, got %+v", ledger.Expenses)
	}
	if len(ledger.Payments) != 1 || ledger.Payments[0].From != "B" {
		t.Errorf("Payments = %+v, want one payment from B", ledger.Payments)
	}

	if _, err := store.TripLedger(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
