package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/tripbudget/internal/models"
)

type party struct {
	name string
	owed float64
}

// Settle turns net balances into a list of payments that clears them.
//
// Algorithm (greedy matching, not transaction-count optimal):
// - Debtors are balances below -Epsilon, creditors are above +Epsilon
// - Both are sorted by amount, largest first; ties keep input order
// - Walk both lists, paying min(debt, credit) from the current debtor to the
//   current creditor and moving on once either is within Epsilon of zero
//
// It emits at most debtors+creditors-1 instructions. Balances that do not sum
// to zero within Epsilon, or that leave more than dust unmatched once one side
// runs out, are reported as a *ConsistencyError.
func Settle(balances []models.Balance) ([]models.SettlementInstruction, error) {
	var debtors, creditors []party
	var sum, excluded float64
	for _, b := range balances {
		sum += b.Net
		switch {
		case b.Net < -Epsilon:
			debtors = append(debtors, party{name: b.Person, owed: -b.Net})
		case b.Net > Epsilon:
			creditors = append(creditors, party{name: b.Person, owed: b.Net})
		default:
			excluded += math.Abs(b.Net)
		}
	}
	if sum < -Epsilon {
		return nil, &ConsistencyError{UnmatchedDebt: -sum}
	}
	if sum > Epsilon {
		return nil, &ConsistencyError{UnmatchedCredit: sum}
	}

	sort.SliceStable(debtors, func(a, b int) bool { return debtors[a].owed > debtors[b].owed })
	sort.SliceStable(creditors, func(a, b int) bool { return creditors[a].owed > creditors[b].owed })

	var instructions []models.SettlementInstruction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].owed, creditors[j].owed)
		if amount > Epsilon {
			instructions = append(instructions, models.SettlementInstruction{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: amount,
			})
		}

		debtors[i].owed -= amount
		creditors[j].owed -= amount

		if debtors[i].owed < Epsilon {
			i++
		}
		if creditors[j].owed < Epsilon {
			j++
		}
	}

	// Each matched party may strand up to Epsilon of dust, and near-zero
	// balances kept out of the partition may leave their own amount unmatched.
	debt := remaining(debtors[i:])
	credit := remaining(creditors[j:])
	tolerance := Epsilon*float64(len(debtors)+len(creditors)) + excluded
	if debt > tolerance || credit > tolerance {
		return nil, &ConsistencyError{UnmatchedDebt: debt, UnmatchedCredit: credit}
	}

	return instructions, nil
}

func remaining(parties []party) float64 {
	var total float64
	for _, p := range parties {
		total += p.owed
	}
	return total
}

// SettleExpenses computes balances for the expenses and settles them.
func SettleExpenses(expenses []models.Expense) ([]models.SettlementInstruction, error) {
	balances, err := ComputeBalances(expenses)
	if err != nil {
		return nil, err
	}
	return Settle(balances)
}
