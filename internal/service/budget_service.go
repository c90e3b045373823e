package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripbudget/internal/calculator"
	"github.com/mmynk/tripbudget/internal/export"
	"github.com/mmynk/tripbudget/internal/models"
	"github.com/mmynk/tripbudget/internal/storage"
	"github.com/mmynk/tripbudget/pkg/api"
)

// Ensure BudgetService implements api.BudgetServiceHandler
var _ api.BudgetServiceHandler = (*BudgetService)(nil)

// BudgetConfig tunes the budget views.
type BudgetConfig struct {
	// DisplayCap bounds the utilization percentage shown to clients.
	DisplayCap int
	// OnSettle, if set, receives the instruction count of every computed
	// settlement.
	OnSettle func(instructions int)
}

// BudgetService implements the Connect BudgetService: expenses, balances,
// settlements, payments and the trip summary.
type BudgetService struct {
	store      storage.Store
	displayCap int
	onSettle   func(int)
	now        func() time.Time
}

// NewBudgetService creates a new BudgetService with the given storage backend.
func NewBudgetService(store storage.Store, cfg BudgetConfig) *BudgetService {
	if cfg.DisplayCap <= 0 {
		cfg.DisplayCap = calculator.DefaultDisplayCap
	}
	return &BudgetService{
		store:      store,
		displayCap: cfg.DisplayCap,
		onSettle:   cfg.OnSettle,
		now:        time.Now,
	}
}

// AddExpense records an expense on a trip. The payer and participants
// become trip members if they were not already.
func (s *BudgetService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"trip_id", req.Msg.TripID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.Participants),
	)

	if req.Msg.TripID == "" {
		return nil, invalidArgument("trip_id", "required")
	}

	category, ok := models.ParseCategory(req.Msg.Category)
	if !ok && strings.TrimSpace(req.Msg.Category) != "" {
		slog.Warn("Unknown category, using general", "category", req.Msg.Category)
	}

	date := timeOrZero(req.Msg.Date)
	if date.IsZero() {
		date = s.now().UTC()
	}

	expense := &models.Expense{
		TripID:       req.Msg.TripID,
		Description:  strings.TrimSpace(req.Msg.Description),
		Amount:       req.Msg.Amount,
		Payer:        strings.TrimSpace(req.Msg.Payer),
		Participants: req.Msg.Participants,
		Category:     category,
		Date:         date,
	}
	if err := calculator.ValidateExpense(expense); err != nil {
		return nil, toConnectError("AddExpense", err)
	}
	expense.Participants = cleanNames(expense.Participants)

	if _, err := s.store.GetTrip(ctx, expense.TripID); err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	members := append([]string{expense.Payer}, expense.Participants...)
	if err := s.store.AddTripMembers(ctx, expense.TripID, members); err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "trip_id", expense.TripID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *BudgetService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id", "required")
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		return nil, toConnectError("DeleteExpense", err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns a trip's expenses, newest first.
func (s *BudgetService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	ledger, err := s.ledger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("ListExpenses", err)
	}
	expenses := calculator.TripExpenses(ledger.Expenses, ledger.Trip.ID)

	out := make([]*api.Expense, len(expenses))
	for i := range expenses {
		out[i] = toAPIExpense(&expenses[i])
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// GetBalances returns every member's net balance after recorded payments.
func (s *BudgetService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	balances, err := s.balances(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}
	return connect.NewResponse(&api.GetBalancesResponse{Balances: toAPIBalances(balances)}), nil
}

// GetSettlements returns the payments that would settle the trip.
func (s *BudgetService) GetSettlements(ctx context.Context, req *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	balances, err := s.balances(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetSettlements", err)
	}

	instructions, err := calculator.Settle(balances)
	if err != nil {
		return nil, toConnectError("GetSettlements", err)
	}
	if s.onSettle != nil {
		s.onSettle(len(instructions))
	}

	slog.Debug("Settlement computed", "trip_id", req.Msg.TripID, "instructions", len(instructions))

	return connect.NewResponse(&api.GetSettlementsResponse{Settlements: toAPISettlements(instructions)}), nil
}

// RecordPayment stores a payment made between two members.
func (s *BudgetService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	slog.Info("RecordPayment request received",
		"trip_id", req.Msg.TripID,
		"amount", req.Msg.Amount,
	)

	if req.Msg.TripID == "" {
		return nil, invalidArgument("trip_id", "required")
	}

	payment := &models.Payment{
		TripID: req.Msg.TripID,
		From:   strings.TrimSpace(req.Msg.From),
		To:     strings.TrimSpace(req.Msg.To),
		Amount: req.Msg.Amount,
		Note:   req.Msg.Note,
	}
	if err := calculator.ValidatePayment(payment); err != nil {
		return nil, toConnectError("RecordPayment", err)
	}

	if _, err := s.store.GetTrip(ctx, payment.TripID); err != nil {
		return nil, toConnectError("RecordPayment", err)
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, toConnectError("RecordPayment", err)
	}

	slog.Info("Payment recorded", "payment_id", payment.ID, "trip_id", payment.TripID)

	return connect.NewResponse(&api.RecordPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// ListPayments returns a trip's recorded payments, oldest first.
func (s *BudgetService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	ledger, err := s.ledger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("ListPayments", err)
	}
	payments := ledger.Payments

	out := make([]*api.Payment, len(payments))
	for i := range payments {
		out[i] = toAPIPayment(&payments[i])
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}

// GetSummary returns spending totals and budget utilization for a trip.
func (s *BudgetService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	ledger, err := s.ledger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetSummary", err)
	}
	trip, expenses := ledger.Trip, ledger.Expenses

	util := calculator.BudgetUtilization(expenses, trip.Budget)

	categories := calculator.CategoryTotals(expenses)
	apiCategories := make([]*api.CategoryTotal, len(categories))
	for i, c := range categories {
		apiCategories[i] = &api.CategoryTotal{Category: string(c.Category), Label: c.Category.Label(), Total: c.Total}
	}

	payers := calculator.PaidTotals(expenses)
	apiPayers := make([]*api.PersonTotal, len(payers))
	for i, p := range payers {
		apiPayers[i] = &api.PersonTotal{Person: p.Person, Total: p.Total}
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		TotalSpent:         util.Spent,
		Budget:             trip.Budget,
		ExpenseCount:       len(expenses),
		Utilization:        util.Ratio,
		UtilizationDefined: util.Defined,
		DisplayPercent:     util.DisplayPercent(s.displayCap),
		Categories:         apiCategories,
		Payers:             apiPayers,
	}), nil
}

// ExportSummary renders the trip as an xlsx workbook.
func (s *BudgetService) ExportSummary(ctx context.Context, req *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	filename, content, err := s.workbook(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("ExportSummary", err)
	}

	slog.Info("Summary exported", "trip_id", req.Msg.TripID, "bytes", len(content))

	return connect.NewResponse(&api.ExportSummaryResponse{Filename: filename, Content: content}), nil
}

// workbook renders the export for a trip and returns its download name.
func (s *BudgetService) workbook(ctx context.Context, tripID string) (string, []byte, error) {
	ledger, err := s.ledger(ctx, tripID)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, ledger.Trip, ledger.Expenses, ledger.Payments, s.displayCap); err != nil {
		return "", nil, err
	}
	return export.Filename(ledger.Trip, s.now()), buf.Bytes(), nil
}

// ledger loads a trip with its expenses and payments from one snapshot.
func (s *BudgetService) ledger(ctx context.Context, tripID string) (*storage.Ledger, error) {
	if tripID == "" {
		return nil, &calculator.ValidationError{Field: "trip_id", Reason: "required"}
	}
	return s.store.TripLedger(ctx, tripID)
}

// balances computes net balances from expenses, then applies recorded
// payments. Both come from one store snapshot.
func (s *BudgetService) balances(ctx context.Context, tripID string) ([]models.Balance, error) {
	ledger, err := s.ledger(ctx, tripID)
	if err != nil {
		return nil, err
	}
	balances, err := calculator.ComputeBalances(ledger.Expenses)
	if err != nil {
		return nil, err
	}
	return calculator.ApplyPayments(balances, ledger.Payments)
}
