package calculator

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/mmynk/tripbudget/internal/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		want     map[string]float64
	}{
		{
			name:     "no expenses",
			expenses: nil,
			want:     map[string]float64{},
		},
		{
			name: "self-paid with no participants",
			expenses: []models.Expense{
				{ID: "e1", Amount: 50, Payer: "Alice"},
			},
			want: map[string]float64{"Alice": 0},
		},
		{
			name: "self-paid with payer as only participant",
			expenses: []models.Expense{
				{ID: "e1", Amount: 50, Payer: "Alice", Participants: []string{"Alice"}},
			},
			want: map[string]float64{"Alice": 0},
		},
		{
			name: "three-person even split",
			expenses: []models.Expense{
				{ID: "e1", Amount: 90, Payer: "A", Participants: []string{"A", "B", "C"}},
			},
			want: map[string]float64{"A": 60, "B": -30, "C": -30},
		},
		{
			name: "multi-expense netting",
			expenses: []models.Expense{
				{ID: "e1", Amount: 100, Payer: "A", Participants: []string{"A", "B"}},
				{ID: "e2", Amount: 40, Payer: "B", Participants: []string{"A", "B"}},
			},
			want: map[string]float64{"A": 30, "B": -30},
		},
		{
			name: "payer not a participant is pure creditor",
			expenses: []models.Expense{
				{ID: "e1", Amount: 40, Payer: "A", Participants: []string{"B", "C"}},
			},
			want: map[string]float64{"A": 40, "B": -20, "C": -20},
		},
		{
			name: "zero amount is harmless",
			expenses: []models.Expense{
				{ID: "e1", Amount: 0, Payer: "A", Participants: []string{"A", "B"}},
			},
			want: map[string]float64{"A": 0, "B": 0},
		},
		{
			name: "duplicate participants count once",
			expenses: []models.Expense{
				{ID: "e1", Amount: 30, Payer: "A", Participants: []string{"A", "B", "B"}},
			},
			want: map[string]float64{"A": 15, "B": -15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.expenses)
			if err != nil {
				t.Fatalf("ComputeBalances() error = %v", err)
			}
			got := BalanceMap(balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for person, want := range tt.want {
				net, ok := got[person]
				if !ok {
					t.Errorf("missing balance for %s", person)
					continue
				}
				if !approx(net, want) {
					t.Errorf("%s balance = %v, want %v", person, net, want)
				}
			}
		})
	}
}

func TestComputeBalances_EncounterOrder(t *testing.T) {
	balances, err := ComputeBalances([]models.Expense{
		{ID: "e1", Amount: 10, Payer: "Carol", Participants: []string{"Bob", "Alice"}},
		{ID: "e2", Amount: 10, Payer: "Alice", Participants: []string{"Dave"}},
	})
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}

	var order []string
	for _, b := range balances {
		order = append(order, b.Person)
	}
	want := []string{"Carol", "Bob", "Alice", "Dave"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestComputeBalances_Validation(t *testing.T) {
	tests := []struct {
		name      string
		expense   models.Expense
		wantField string
	}{
		{"negative amount", models.Expense{ID: "e1", Amount: -5, Payer: "A"}, "amount"},
		{"NaN amount", models.Expense{ID: "e1", Amount: math.NaN(), Payer: "A"}, "amount"},
		{"infinite amount", models.Expense{ID: "e1", Amount: math.Inf(1), Payer: "A"}, "amount"},
		{"empty payer", models.Expense{ID: "e1", Amount: 5, Payer: ""}, "payer"},
		{"blank payer", models.Expense{ID: "e1", Amount: 5, Payer: "   "}, "payer"},
		{"blank participant", models.Expense{ID: "e1", Amount: 5, Payer: "A", Participants: []string{"A", ""}}, "participants"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBalances([]models.Expense{
				{ID: "ok", Amount: 10, Payer: "A"},
				tt.expense,
			})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ComputeBalances() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.ID != "e1" {
				t.Errorf("ID = %q, want e1", verr.ID)
			}
		})
	}
}

func TestComputeBalances_EmptyDescriptionAllowed(t *testing.T) {
	_, err := ComputeBalances([]models.Expense{{ID: "e1", Amount: 5, Payer: "A"}})
	if err != nil {
		t.Errorf("expected empty description to be accepted, got %v", err)
	}
}

// randomExpenses builds whole-euro expenses split among up to four people, so
// every share difference is either zero or well above Epsilon.
func randomExpenses(r *rand.Rand, n int) []models.Expense {
	people := []string{"Alice", "Bob", "Charlie", "Diana", "Eve"}
	expenses := make([]models.Expense, n)
	for i := range expenses {
		var participants []string
		for _, p := range r.Perm(len(people))[:r.IntN(5)] {
			participants = append(participants, people[p])
		}
		expenses[i] = models.Expense{
			ID:           "e",
			Amount:       float64(r.IntN(500)),
			Payer:        people[r.IntN(len(people))],
			Participants: participants,
		}
	}
	return expenses
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 200; round++ {
		balances, err := ComputeBalances(randomExpenses(r, 1+r.IntN(30)))
		if err != nil {
			t.Fatalf("round %d: ComputeBalances() error = %v", round, err)
		}
		var sum float64
		for _, b := range balances {
			sum += b.Net
		}
		if !approx(sum, 0) {
			t.Fatalf("round %d: balances sum to %v, want 0", round, sum)
		}
	}
}

func TestComputeBalances_Idempotent(t *testing.T) {
	expenses := randomExpenses(rand.New(rand.NewPCG(3, 5)), 25)

	first, err := ComputeBalances(expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	second, err := ComputeBalances(expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second call = %v, want %v", second, first)
	}
}

func TestApplyPayments(t *testing.T) {
	balances := []models.Balance{{Person: "A", Net: 60}, {Person: "B", Net: -30}, {Person: "C", Net: -30}}

	got, err := ApplyPayments(balances, []models.Payment{
		{ID: "p1", From: "B", To: "A", Amount: 30},
		{ID: "p2", From: "C", To: "A", Amount: 10},
	})
	if err != nil {
		t.Fatalf("ApplyPayments() error = %v", err)
	}

	m := BalanceMap(got)
	for person, want := range map[string]float64{"A": 20, "B": 0, "C": -20} {
		if !approx(m[person], want) {
			t.Errorf("%s balance = %v, want %v", person, m[person], want)
		}
	}
	if balances[0].Net != 60 {
		t.Errorf("input was mutated: A = %v", balances[0].Net)
	}
}

func TestApplyPayments_NewPerson(t *testing.T) {
	got, err := ApplyPayments(nil, []models.Payment{{From: "B", To: "A", Amount: 5}})
	if err != nil {
		t.Fatalf("ApplyPayments() error = %v", err)
	}
	want := []models.Balance{{Person: "B", Net: 5}, {Person: "A", Net: -5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApplyPayments() = %v, want %v", got, want)
	}
}

func TestApplyPayments_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payment models.Payment
	}{
		{"zero amount", models.Payment{From: "A", To: "B", Amount: 0}},
		{"negative amount", models.Payment{From: "A", To: "B", Amount: -1}},
		{"missing from", models.Payment{From: "", To: "B", Amount: 1}},
		{"missing to", models.Payment{From: "A", To: " ", Amount: 1}},
		{"same person", models.Payment{From: "A", To: "A", Amount: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyPayments(nil, []models.Payment{tt.payment})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("ApplyPayments() error = %v, want *ValidationError", err)
			}
		})
	}
}
