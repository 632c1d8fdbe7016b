package services

import (
	"fmt"
	"time"

	"console-backend/internal/models"
)

// FieldErrors keys validation messages by field name. Refund line errors
// use refund_amount_{i} / refund_account_{i} keys.
type FieldErrors map[string]string

func (e FieldErrors) set(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// PaymentContext is the account state a form validates against
type PaymentContext struct {
	CustomerID     int
	AdvanceBalance float64
	Invoice        *models.Invoice // selected invoice, nil for advance payments
}

// PaymentForm is one of the three transaction variants. Validation is
// synchronous and field-scoped; a non-empty error map blocks submission
// entirely, and Build is only meaningful on a validated form.
type PaymentForm interface {
	Validate(pc *PaymentContext) FieldErrors
	Build(pc *PaymentContext) *models.CreateCustomerPaymentRequest
}

var validMethods = map[string]bool{
	models.PaymentMethodCash:         true,
	models.PaymentMethodBankTransfer: true,
	models.PaymentMethodCheque:       true,
	models.PaymentMethodCard:         true,
	models.PaymentMethodOther:        true,
}

// InvoicePaymentForm records a payment against one outstanding invoice
type InvoicePaymentForm struct {
	Amount           float64
	PaymentMethod    string
	PaymentDate      string
	UseAdvance       bool
	PaymentAccountID *int
	Cheque           *models.ChequeDetails
	Notes            string
}

// NewInvoicePaymentForm pre-fills the amount with the invoice's remaining
// due, the default the console shows on selection. The amount stays
// user-editable afterwards.
func NewInvoicePaymentForm(inv *models.Invoice) *InvoicePaymentForm {
	form := &InvoicePaymentForm{PaymentMethod: models.PaymentMethodCash}
	if inv != nil {
		form.Amount = inv.DueAmount
	}
	return form
}

func (f *InvoicePaymentForm) Validate(pc *PaymentContext) FieldErrors {
	errs := FieldErrors{}

	inv := pc.Invoice
	switch {
	case inv == nil:
		errs.set("invoice_id", "an invoice must be selected")
	case inv.DueAmount <= 0:
		errs.set("invoice_id", "selected invoice has no amount due")
	case inv.Status == models.InvoiceStatusRefunded,
		inv.Status == models.InvoiceStatusCancelled,
		inv.Status == models.InvoiceStatusPaid:
		errs.set("invoice_id", fmt.Sprintf("a %s invoice cannot be paid", inv.Status))
	}

	if f.Amount <= 0 {
		errs.set("amount", "amount must be greater than zero")
	}
	if f.UseAdvance && f.Amount > pc.AdvanceBalance {
		errs.set("amount", fmt.Sprintf("amount exceeds available advance balance of %.2f", pc.AdvanceBalance))
	}

	validateMethodAndAccount(errs, f.PaymentMethod, f.PaymentAccountID, f.Cheque, f.UseAdvance)
	return errs
}

func (f *InvoicePaymentForm) Build(pc *PaymentContext) *models.CreateCustomerPaymentRequest {
	req := &models.CreateCustomerPaymentRequest{
		CustomerID:    pc.CustomerID,
		PaymentType:   models.PaymentTypeInvoice,
		Amount:        f.Amount,
		PaymentMethod: f.PaymentMethod,
		PaymentDate:   defaultDate(f.PaymentDate),
		UseAdvance:    f.UseAdvance,
		Notes:         f.Notes,
	}
	if pc.Invoice != nil {
		id := pc.Invoice.ID
		req.InvoiceID = &id
	}
	if !f.UseAdvance {
		req.PaymentAccountID = f.PaymentAccountID
	}
	if f.PaymentMethod == models.PaymentMethodCheque {
		req.Cheque = f.Cheque
	}
	return req
}

// AdvancePaymentForm adds prepaid credit; the ERP may auto-apply it to
// outstanding invoices and reports that in the response.
type AdvancePaymentForm struct {
	Amount           float64
	PaymentMethod    string
	PaymentDate      string
	PaymentAccountID *int
	Cheque           *models.ChequeDetails
	Notes            string
}

func (f *AdvancePaymentForm) Validate(pc *PaymentContext) FieldErrors {
	errs := FieldErrors{}
	if f.Amount <= 0 {
		errs.set("amount", "amount must be greater than zero")
	}
	validateMethodAndAccount(errs, f.PaymentMethod, f.PaymentAccountID, f.Cheque, false)
	return errs
}

func (f *AdvancePaymentForm) Build(pc *PaymentContext) *models.CreateCustomerPaymentRequest {
	req := &models.CreateCustomerPaymentRequest{
		CustomerID:       pc.CustomerID,
		PaymentType:      models.PaymentTypeAdvance,
		Amount:           f.Amount,
		PaymentMethod:    f.PaymentMethod,
		PaymentDate:      defaultDate(f.PaymentDate),
		PaymentAccountID: f.PaymentAccountID,
		Notes:            f.Notes,
	}
	if f.PaymentMethod == models.PaymentMethodCheque {
		req.Cheque = f.Cheque
	}
	return req
}

// RefundForm returns money for the paid portion of an invoice, possibly
// split across several accounts/methods. Cheque details travel per line
// through method selection, not at the form level.
type RefundForm struct {
	Lines         []models.RefundLine
	PaymentDate   string
	RestockItems  bool
	LossAccountID *int
	Notes         string
}

func (f *RefundForm) Validate(pc *PaymentContext) FieldErrors {
	errs := FieldErrors{}

	inv := pc.Invoice
	switch {
	case inv == nil:
		errs.set("invoice_id", "an invoice must be selected")
	case inv.Status == models.InvoiceStatusCancelled,
		inv.Status == models.InvoiceStatusRefunded:
		errs.set("invoice_id", fmt.Sprintf("a %s invoice cannot be refunded", inv.Status))
	case inv.DueAmount >= inv.TotalAmount:
		// Nothing has been paid on it, so there is nothing to return.
		errs.set("invoice_id", "invoice has no paid portion to refund")
	}

	if len(f.Lines) == 0 {
		errs.set("refund_lines", "at least one refund line is required")
	}

	var total float64
	for i, line := range f.Lines {
		if line.Amount <= 0 {
			errs.set(fmt.Sprintf("refund_amount_%d", i), "refund amount must be greater than zero")
		}
		if line.PaymentAccountID == 0 {
			errs.set(fmt.Sprintf("refund_account_%d", i), "a payment account is required")
		}
		if !validMethods[line.PaymentMethod] {
			errs.set(fmt.Sprintf("refund_method_%d", i), "invalid payment method")
		}
		total += line.Amount
	}

	if inv != nil && total > inv.TotalAmount {
		errs.set("refund_lines", fmt.Sprintf("refund total %.2f exceeds invoice amount %.2f", total, inv.TotalAmount))
	}
	return errs
}

func (f *RefundForm) Build(pc *PaymentContext) *models.CreateCustomerPaymentRequest {
	var total float64
	for _, line := range f.Lines {
		total += line.Amount
	}
	req := &models.CreateCustomerPaymentRequest{
		CustomerID:    pc.CustomerID,
		PaymentType:   models.PaymentTypeRefund,
		Amount:        total,
		PaymentDate:   defaultDate(f.PaymentDate),
		RefundLines:   f.Lines,
		RestockItems:  f.RestockItems,
		LossAccountID: f.LossAccountID,
		Notes:         f.Notes,
	}
	if pc.Invoice != nil {
		id := pc.Invoice.ID
		req.InvoiceID = &id
	}
	return req
}

// validateMethodAndAccount applies the shared method/account/cheque rules.
// Paying from the advance balance waives the account requirement, as does
// the cheque method (the cheque's bank details identify the account), but
// cheques then require their own fields.
func validateMethodAndAccount(errs FieldErrors, method string, accountID *int, cheque *models.ChequeDetails, useAdvance bool) {
	if !validMethods[method] {
		errs.set("payment_method", "invalid payment method")
		return
	}

	if method == models.PaymentMethodCheque {
		if cheque == nil || cheque.ChequeNumber == "" {
			errs.set("cheque_number", "cheque number is required")
		}
		if cheque == nil || cheque.ChequeDate == "" {
			errs.set("cheque_date", "cheque date is required")
		}
		if cheque == nil || cheque.BankName == "" {
			errs.set("bank_name", "bank name is required")
		}
		return
	}

	if !useAdvance && (accountID == nil || *accountID == 0) {
		errs.set("payment_account_id", "a payment account is required")
	}
}

func defaultDate(date string) string {
	if date != "" {
		return date
	}
	return time.Now().Format("2006-01-02")
}
