package api

// Trip is the wire form of a trip. Dates are Unix seconds, 0 when unset.
type Trip struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Organizer   string   `json:"organizer,omitempty"`
	Budget      float64  `json:"budget"`
	Members     []string `json:"members"`
	StartDate   int64    `json:"start_date,omitempty"`
	EndDate     int64    `json:"end_date,omitempty"`
	CreatedAt   int64    `json:"created_at"`
}

// Expense is the wire form of an expense. Date is Unix seconds.
type Expense struct {
	ID           string   `json:"id"`
	TripID       string   `json:"trip_id"`
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Category     string   `json:"category"`
	Date         int64    `json:"date"`
	CreatedAt    int64    `json:"created_at"`
}

type Payment struct {
	ID        string  `json:"id"`
	TripID    string  `json:"trip_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

type Balance struct {
	Person string  `json:"person"`
	Net    float64 `json:"net"`
	// Settled is true when Net is within one cent of zero.
	Settled bool `json:"settled"`
}

type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Total    float64 `json:"total"`
}

type PersonTotal struct {
	Person string  `json:"person"`
	Total  float64 `json:"total"`
}

type CreateTripRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Organizer   string   `json:"organizer,omitempty"`
	Budget      float64  `json:"budget"`
	Members     []string `json:"members"`
	StartDate   int64    `json:"start_date,omitempty"`
	EndDate     int64    `json:"end_date,omitempty"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id"`
}

type DeleteTripResponse struct{}

type AddExpenseRequest struct {
	TripID       string   `json:"trip_id"`
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Category     string   `json:"category"`
	// Date is Unix seconds; 0 means now.
	Date int64 `json:"date,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct {
	TripID string `json:"trip_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	TripID string `json:"trip_id"`
}

type GetBalancesResponse struct {
	Balances []*Balance `json:"balances"`
}

type GetSettlementsRequest struct {
	TripID string `json:"trip_id"`
}

type GetSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type RecordPaymentRequest struct {
	TripID string  `json:"trip_id"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	TripID string `json:"trip_id"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type GetSummaryRequest struct {
	TripID string `json:"trip_id"`
}

type GetSummaryResponse struct {
	TotalSpent   float64 `json:"total_spent"`
	Budget       float64 `json:"budget"`
	ExpenseCount int     `json:"expense_count"`
	// Utilization is total_spent / budget, unclamped. Only meaningful when
	// UtilizationDefined is true.
	Utilization        float64          `json:"utilization"`
	UtilizationDefined bool             `json:"utilization_defined"`
	DisplayPercent     int              `json:"display_percent"`
	Categories         []*CategoryTotal `json:"categories"`
	Payers             []*PersonTotal   `json:"payers"`
}

type ExportSummaryRequest struct {
	TripID string `json:"trip_id"`
}

type ExportSummaryResponse struct {
	Filename string `json:"filename"`
	// Content is the xlsx workbook, base64 encoded on the wire.
	Content []byte `json:"content"`
}
