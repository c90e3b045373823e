package service

import (
	"time"

	"github.com/mmynk/tripbudget/internal/calculator"
	"github.com/mmynk/tripbudget/internal/models"
	"github.com/mmynk/tripbudget/pkg/api"
)

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func toAPITrip(t *models.Trip) *api.Trip {
	members := t.Members
	if members == nil {
		members = []string{}
	}
	return &api.Trip{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Destination: t.Destination,
		Organizer:   t.Organizer,
		Budget:      t.Budget,
		Members:     members,
		StartDate:   unixOrZero(t.StartDate),
		EndDate:     unixOrZero(t.EndDate),
		CreatedAt:   t.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	return &api.Expense{
		ID:           e.ID,
		TripID:       e.TripID,
		Description:  e.Description,
		Amount:       e.Amount,
		Payer:        e.Payer,
		Participants: participants,
		Category:     string(e.Category),
		Date:         unixOrZero(e.Date),
		CreatedAt:    e.CreatedAt,
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:        p.ID,
		TripID:    p.TripID,
		From:      p.From,
		To:        p.To,
		Amount:    p.Amount,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}

func toAPIBalances(balances []models.Balance) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{Person: b.Person, Net: b.Net, Settled: calculator.IsSettled(b.Net)}
	}
	return out
}

func toAPISettlements(instructions []models.SettlementInstruction) []*api.Settlement {
	out := make([]*api.Settlement, len(instructions))
	for i, in := range instructions {
		out[i] = &api.Settlement{From: in.From, To: in.To, Amount: in.Amount}
	}
	return out
}
