package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// TripServiceName is the fully-qualified name of the TripService service.
	TripServiceName = "tripbudget.v1.TripService"
	// BudgetServiceName is the fully-qualified name of the BudgetService service.
	BudgetServiceName = "tripbudget.v1.BudgetService"
)

// Procedure paths, usable as HTTP routes and in interceptors.
const (
	TripServiceCreateTripProcedure       = "/tripbudget.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure          = "/tripbudget.v1.TripService/GetTrip"
	TripServiceListTripsProcedure        = "/tripbudget.v1.TripService/ListTrips"
	TripServiceDeleteTripProcedure       = "/tripbudget.v1.TripService/DeleteTrip"
	BudgetServiceAddExpenseProcedure     = "/tripbudget.v1.BudgetService/AddExpense"
	BudgetServiceDeleteExpenseProcedure  = "/tripbudget.v1.BudgetService/DeleteExpense"
	BudgetServiceListExpensesProcedure   = "/tripbudget.v1.BudgetService/ListExpenses"
	BudgetServiceGetBalancesProcedure    = "/tripbudget.v1.BudgetService/GetBalances"
	BudgetServiceGetSettlementsProcedure = "/tripbudget.v1.BudgetService/GetSettlements"
	BudgetServiceRecordPaymentProcedure  = "/tripbudget.v1.BudgetService/RecordPayment"
	BudgetServiceListPaymentsProcedure   = "/tripbudget.v1.BudgetService/ListPayments"
	BudgetServiceGetSummaryProcedure     = "/tripbudget.v1.BudgetService/GetSummary"
	BudgetServiceExportSummaryProcedure  = "/tripbudget.v1.BudgetService/ExportSummary"
)

// TripServiceHandler is implemented by the trip management service.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
}

// NewTripServiceHandler builds an HTTP handler for every TripService procedure.
// It returns the path prefix to mount the handler on.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(TripServiceListTripsProcedure, connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...))
	mux.Handle(TripServiceDeleteTripProcedure, connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...))
	return "/" + TripServiceName + "/", mux
}

// TripServiceClient calls TripService procedures over HTTP.
type TripServiceClient struct {
	createTrip *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip    *connect.Client[GetTripRequest, GetTripResponse]
	listTrips  *connect.Client[ListTripsRequest, ListTripsResponse]
	deleteTrip *connect.Client[DeleteTripRequest, DeleteTripResponse]
}

// NewTripServiceClient creates a client for the server at baseURL
// (e.g. http://localhost:8080).
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &TripServiceClient{
		createTrip: connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:    connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:  connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		deleteTrip: connect.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

// BudgetServiceHandler is implemented by the expense and settlement service.
type BudgetServiceHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
	GetSettlements(context.Context, *connect.Request[GetSettlementsRequest]) (*connect.Response[GetSettlementsResponse], error)
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	ExportSummary(context.Context, *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler for every BudgetService procedure.
// It returns the path prefix to mount the handler on.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(BudgetServiceAddExpenseProcedure, connect.NewUnaryHandler(BudgetServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(BudgetServiceDeleteExpenseProcedure, connect.NewUnaryHandler(BudgetServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(BudgetServiceListExpensesProcedure, connect.NewUnaryHandler(BudgetServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(BudgetServiceGetBalancesProcedure, connect.NewUnaryHandler(BudgetServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(BudgetServiceGetSettlementsProcedure, connect.NewUnaryHandler(BudgetServiceGetSettlementsProcedure, svc.GetSettlements, opts...))
	mux.Handle(BudgetServiceRecordPaymentProcedure, connect.NewUnaryHandler(BudgetServiceRecordPaymentProcedure, svc.RecordPayment, opts...))
	mux.Handle(BudgetServiceListPaymentsProcedure, connect.NewUnaryHandler(BudgetServiceListPaymentsProcedure, svc.ListPayments, opts...))
	mux.Handle(BudgetServiceGetSummaryProcedure, connect.NewUnaryHandler(BudgetServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(BudgetServiceExportSummaryProcedure, connect.NewUnaryHandler(BudgetServiceExportSummaryProcedure, svc.ExportSummary, opts...))
	return "/" + BudgetServiceName + "/", mux
}

// BudgetServiceClient calls BudgetService procedures over HTTP.
type BudgetServiceClient struct {
	addExpense     *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense  *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpenses   *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getBalances    *connect.Client[GetBalancesRequest, GetBalancesResponse]
	getSettlements *connect.Client[GetSettlementsRequest, GetSettlementsResponse]
	recordPayment  *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	listPayments   *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
	getSummary     *connect.Client[GetSummaryRequest, GetSummaryResponse]
	exportSummary  *connect.Client[ExportSummaryRequest, ExportSummaryResponse]
}

// NewBudgetServiceClient creates a client for the server at baseURL
// (e.g. http://localhost:8080).
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BudgetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &BudgetServiceClient{
		addExpense:     connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+BudgetServiceAddExpenseProcedure, opts...),
		deleteExpense:  connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+BudgetServiceDeleteExpenseProcedure, opts...),
		listExpenses:   connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+BudgetServiceListExpensesProcedure, opts...),
		getBalances:    connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+BudgetServiceGetBalancesProcedure, opts...),
		getSettlements: connect.NewClient[GetSettlementsRequest, GetSettlementsResponse](httpClient, baseURL+BudgetServiceGetSettlementsProcedure, opts...),
		recordPayment:  connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+BudgetServiceRecordPaymentProcedure, opts...),
		listPayments:   connect.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL+BudgetServiceListPaymentsProcedure, opts...),
		getSummary:     connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+BudgetServiceGetSummaryProcedure, opts...),
		exportSummary:  connect.NewClient[ExportSummaryRequest, ExportSummaryResponse](httpClient, baseURL+BudgetServiceExportSummaryProcedure, opts...),
	}
}

func (c *BudgetServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetSettlements(ctx context.Context, req *connect.Request[GetSettlementsRequest]) (*connect.Response[GetSettlementsResponse], error) {
	return c.getSettlements.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ExportSummary(ctx context.Context, req *connect.Request[ExportSummaryRequest]) (*connect.Response[ExportSummaryResponse], error) {
	return c.exportSummary.CallUnary(ctx, req)
}
