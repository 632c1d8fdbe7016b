package services

import (
	"context"
	"fmt"

	"console-backend/internal/erp"
	"console-backend/internal/models"
)

// PaymentSubmission is the console's submit body: a payment type plus the
// union of the fields the three variants use. BuildForm picks the variant.
type PaymentSubmission struct {
	PaymentType      models.PaymentType    `json:"payment_type"`
	InvoiceID        *int                  `json:"invoice_id"`
	Amount           float64               `json:"amount"`
	PaymentMethod    string                `json:"payment_method"`
	PaymentDate      string                `json:"payment_date"`
	UseAdvance       bool                  `json:"use_advance"`
	PaymentAccountID *int                  `json:"payment_account_id"`
	Cheque           *models.ChequeDetails `json:"cheque"`
	RefundLines      []models.RefundLine   `json:"refund_lines"`
	RestockItems     bool                  `json:"restock_items"`
	LossAccountID    *int                  `json:"loss_account_id"`
	Notes            string                `json:"notes"`
}

// ValidationFailed reports pre-submission validation errors. The form is
// never partially submitted; the caller re-renders with these inline.
type ValidationFailed struct {
	Fields FieldErrors
}

func (e *ValidationFailed) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// PaymentService validates and forwards payment transactions to the ERP
type PaymentService struct {
	ERP       erp.Client
	Summaries *SummaryService
}

func NewPaymentService(client erp.Client, summaries *SummaryService) *PaymentService {
	return &PaymentService{ERP: client, Summaries: summaries}
}

// BuildForm maps a submission to its typed variant
func BuildForm(sub *PaymentSubmission) (PaymentForm, error) {
	switch sub.PaymentType {
	case models.PaymentTypeInvoice:
		return &InvoicePaymentForm{
			Amount:           sub.Amount,
			PaymentMethod:    sub.PaymentMethod,
			PaymentDate:      sub.PaymentDate,
			UseAdvance:       sub.UseAdvance,
			PaymentAccountID: sub.PaymentAccountID,
			Cheque:           sub.Cheque,
			Notes:            sub.Notes,
		}, nil
	case models.PaymentTypeAdvance:
		return &AdvancePaymentForm{
			Amount:           sub.Amount,
			PaymentMethod:    sub.PaymentMethod,
			PaymentDate:      sub.PaymentDate,
			PaymentAccountID: sub.PaymentAccountID,
			Cheque:           sub.Cheque,
			Notes:            sub.Notes,
		}, nil
	case models.PaymentTypeRefund:
		return &RefundForm{
			Lines:         sub.RefundLines,
			PaymentDate:   sub.PaymentDate,
			RestockItems:  sub.RestockItems,
			LossAccountID: sub.LossAccountID,
			Notes:         sub.Notes,
		}, nil
	default:
		return nil, &ValidationFailed{Fields: FieldErrors{
			"payment_type": fmt.Sprintf("unknown payment type %q", sub.PaymentType),
		}}
	}
}

// Submit validates the submission against current account state, forwards
// the assembled transaction, and interprets the ERP's response. The ERP is
// the sole arbiter of ledger consistency; this side only guarantees a
// well-formed write.
func (s *PaymentService) Submit(ctx context.Context, customerID int, sub *PaymentSubmission) (*PaymentOutcome, error) {
	form, err := BuildForm(sub)
	if err != nil {
		return nil, err
	}

	pc, err := s.resolveContext(ctx, customerID, sub)
	if err != nil {
		return nil, err
	}

	if errs := form.Validate(pc); len(errs) > 0 {
		return nil, &ValidationFailed{Fields: errs}
	}

	resp, err := s.ERP.CreateCustomerPayment(ctx, form.Build(pc))
	if err != nil {
		return nil, err
	}
	return InterpretAutoApply(resp), nil
}

// resolveContext gathers the account state validation needs: the advance
// balance, and the selected invoice when one is referenced.
func (s *PaymentService) resolveContext(ctx context.Context, customerID int, sub *PaymentSubmission) (*PaymentContext, error) {
	pc := &PaymentContext{CustomerID: customerID}

	if sub.UseAdvance || sub.PaymentType == models.PaymentTypeInvoice {
		summary, err := s.Summaries.GetAccountSummary(ctx, customerID)
		if err != nil {
			return nil, err
		}
		pc.AdvanceBalance = summary.PrepaidAmount
	}

	if sub.InvoiceID != nil {
		invoices, err := s.ERP.ListInvoices(ctx, customerID, "sales")
		if err != nil {
			return nil, err
		}
		for i := range invoices {
			if invoices[i].ID == *sub.InvoiceID {
				pc.Invoice = &invoices[i]
				break
			}
		}
		if pc.Invoice == nil {
			return nil, &ValidationFailed{Fields: FieldErrors{
				"invoice_id": fmt.Sprintf("invoice %d not found for customer %d", *sub.InvoiceID, customerID),
			}}
		}
	}
	return pc, nil
}
