package calculator

import (
	"math"

	"github.com/mmynk/tripbudget/internal/models"
)

// Epsilon is the tolerance below which a balance counts as settled.
const Epsilon = 0.01

// IsSettled reports whether a balance is within Epsilon of zero.
func IsSettled(net float64) bool {
	return math.Abs(net) <= Epsilon
}

// ledger accumulates balances keyed by person while remembering the order in
// which people were first seen.
type ledger struct {
	order []string
	net   map[string]float64
}

func newLedger() *ledger {
	return &ledger{net: make(map[string]float64)}
}

func (l *ledger) add(person string, amount float64) {
	if _, exists := l.net[person]; !exists {
		l.order = append(l.order, person)
	}
	l.net[person] += amount
}

func (l *ledger) balances() []models.Balance {
	out := make([]models.Balance, len(l.order))
	for i, person := range l.order {
		out[i] = models.Balance{Person: person, Net: l.net[person]}
	}
	return out
}

func ledgerFrom(balances []models.Balance) *ledger {
	l := newLedger()
	for _, b := range balances {
		l.add(b.Person, b.Net)
	}
	return l
}

// ComputeBalances reduces expenses to each person's net balance: what they
// paid minus their share of what they took part in.
//
// Algorithm:
// - Payer is credited the full amount
// - Every participant (the payer too, if listed) is debited amount / n
// - No participants means the payer carries the whole expense
//
// Balances come back in the order people are first seen, payer before
// participants. The result does not depend on expense order beyond that.
func ComputeBalances(expenses []models.Expense) ([]models.Balance, error) {
	for i := range expenses {
		if err := ValidateExpense(&expenses[i]); err != nil {
			return nil, err
		}
	}

	l := newLedger()
	for i := range expenses {
		e := &expenses[i]
		people := e.SplitAmong()
		share := e.Amount / float64(max(len(people), 1))

		l.add(e.Payer, e.Amount)
		for _, person := range people {
			l.add(person, -share)
		}
	}
	return l.balances(), nil
}

// BalanceMap indexes balances by person.
func BalanceMap(balances []models.Balance) map[string]float64 {
	m := make(map[string]float64, len(balances))
	for _, b := range balances {
		m[b.Person] += b.Net
	}
	return m
}

// ApplyInstructions returns the balances after every instruction is paid:
// the debtor's balance goes up by the amount and the creditor's goes down.
func ApplyInstructions(balances []models.Balance, instructions []models.SettlementInstruction) []models.Balance {
	l := ledgerFrom(balances)
	for _, in := range instructions {
		l.add(in.From, in.Amount)
		l.add(in.To, -in.Amount)
	}
	return l.balances()
}

// ApplyPayments folds recorded payments into expense balances.
// People who only appear in payments are appended.
func ApplyPayments(balances []models.Balance, payments []models.Payment) ([]models.Balance, error) {
	l := ledgerFrom(balances)
	for i := range payments {
		p := &payments[i]
		if err := ValidatePayment(p); err != nil {
			return nil, err
		}
		l.add(p.From, p.Amount)
		l.add(p.To, -p.Amount)
	}
	return l.balances(), nil
}
