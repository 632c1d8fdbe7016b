package models

// PaymentType discriminates the three transaction kinds the console submits
type PaymentType string

const (
	PaymentTypeInvoice PaymentType = "invoice_payment"
	PaymentTypeAdvance PaymentType = "advance_payment"
	PaymentTypeRefund  PaymentType = "refund"
)

// Payment methods accepted by the ERP
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheque       = "cheque"
	PaymentMethodCard         = "card"
	PaymentMethodOther        = "other"
)

// RefundLine is one (account, method, amount) split of a refund
type RefundLine struct {
	Amount           float64 `json:"amount"`
	PaymentAccountID int     `json:"payment_account_id"`
	PaymentMethod    string  `json:"payment_method"`
}

// ChequeDetails accompany any cheque-method payment
type ChequeDetails struct {
	ChequeNumber string `json:"cheque_number"`
	ChequeDate   string `json:"cheque_date"`
	BankName     string `json:"bank_name"`
}

// CreateCustomerPaymentRequest is the single wire shape submitted to the
// ERP's create-payment endpoint. Optional fields are set per payment type;
// the builder never emits fields a type does not use.
type CreateCustomerPaymentRequest struct {
	CustomerID       int            `json:"customer_id"`
	PaymentType      PaymentType    `json:"payment_type"`
	Amount           float64        `json:"amount"`
	PaymentMethod    string         `json:"payment_method,omitempty"`
	PaymentDate      string         `json:"payment_date"`
	InvoiceID        *int           `json:"invoice_id,omitempty"`
	UseAdvance       bool           `json:"use_advance,omitempty"`
	PaymentAccountID *int           `json:"payment_account_id,omitempty"`
	Cheque           *ChequeDetails `json:"cheque,omitempty"`
	RefundLines      []RefundLine   `json:"refund_lines,omitempty"`
	RestockItems     bool           `json:"restock_items,omitempty"`
	LossAccountID    *int           `json:"loss_account_id,omitempty"`
	Notes            string         `json:"notes,omitempty"`
}

// CustomerPayment is one historical payment record fetched from the ERP
type CustomerPayment struct {
	ID            int         `json:"id"`
	PaymentType   PaymentType `json:"payment_type"`
	Amount        float64     `json:"amount"`
	PaymentMethod string      `json:"payment_method"`
	PaymentDate   string      `json:"payment_date"`
	InvoiceID     *int        `json:"invoice_id,omitempty"`
}

// AutoAppliedPayment reports one invoice the ERP settled from an advance
type AutoAppliedPayment struct {
	ID                      int     `json:"id"`
	InvoiceID               int     `json:"invoice_id"`
	InvoiceNumber           string  `json:"invoice_number"`
	AmountApplied           float64 `json:"amount_applied"`
	InvoiceStatusAfter      string  `json:"invoice_status_after"`
	RemainingInvoiceBalance float64 `json:"remaining_invoice_balance"`
}

// AdvanceApplySummary aggregates an advance payment's auto-application
type AdvanceApplySummary struct {
	TotalAdvanceReceived      float64 `json:"total_advance_received"`
	AmountAppliedToInvoices   float64 `json:"amount_applied_to_invoices"`
	RemainingAdvanceBalance   float64 `json:"remaining_advance_balance"`
	CustomerNewAdvanceBalance float64 `json:"customer_new_advance_balance"`
}

// CreatePaymentResponse is what the ERP returns after a payment submission.
// AutoAppliedPayments and AdvanceSummary are present only when the ERP
// auto-applied an advance to outstanding invoices.
type CreatePaymentResponse struct {
	PaymentID           int                  `json:"payment_id"`
	AutoAppliedPayments []AutoAppliedPayment `json:"auto_applied_payments,omitempty"`
	AdvanceSummary      *AdvanceApplySummary `json:"advance_summary,omitempty"`
}
