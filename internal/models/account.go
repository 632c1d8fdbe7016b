package models

import "time"

// AdvanceTransactionType represents the type of an advance ledger movement
type AdvanceTransactionType string

const (
	AdvanceReceived AdvanceTransactionType = "received" // Prepaid credit added by the customer
	AdvanceUsed     AdvanceTransactionType = "used"     // Credit applied against an invoice
	AdvanceRefunded AdvanceTransactionType = "refunded" // Credit returned to the customer
)

// AdvanceTransaction is one movement in a customer's advance (prepaid) log.
// Balance is the running balance snapshot supplied by the ERP at transaction
// time; it is never recomputed on this side.
type AdvanceTransaction struct {
	ID              int                    `json:"id"`
	TransactionType AdvanceTransactionType `json:"transaction_type"`
	Amount          float64                `json:"amount"`
	TransactionDate time.Time              `json:"transaction_date"`
	Balance         float64                `json:"balance"`
}

// OutstandingInvoiceRef is a reference to an invoice with money still owed.
// DueAmount never exceeds Amount; DueAmount == Amount means fully unpaid.
type OutstandingInvoiceRef struct {
	InvoiceID     int       `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	DueAmount     float64   `json:"due_amount"`
	InvoiceDate   time.Time `json:"invoice_date"`
	Status        string    `json:"status"`
}

// AccountSummary is the reconciled view of a customer's account. It is
// derived on every fetch, never stored.
type AccountSummary struct {
	CustomerID          int                     `json:"customer_id"`
	DueAmount           float64                 `json:"due_amount"`
	PrepaidAmount       float64                 `json:"prepaid_amount"`
	TotalSpent          float64                 `json:"total_spent"`
	TotalPaid           float64                 `json:"total_paid"`
	OutstandingInvoices []OutstandingInvoiceRef `json:"outstanding_invoices"`
	AdvanceTransactions []AdvanceTransaction    `json:"advance_transactions"`
	// Estimated marks a summary derived from the invoice list alone, when
	// no payment-summary response was usable. Partial-payment state is not
	// recoverable in that mode.
	Estimated bool `json:"estimated"`
}

// Account is an ERP chart-of-accounts entry used by the payment and
// loss-account pickers.
type Account struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RootType string `json:"root_type"`
	IsGroup  bool   `json:"is_group"`
}
