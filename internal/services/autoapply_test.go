package services

import (
	"testing"

	"console-backend/internal/models"
)

func TestInterpretAutoApplyNoneApplied(t *testing.T) {
	outcome := InterpretAutoApply(&models.CreatePaymentResponse{PaymentID: 5})

	if outcome.ShowReconciliation {
		t.Error("no auto-applied invoices should mean an immediate success")
	}
	if outcome.PaymentID != 5 {
		t.Errorf("payment_id = %d, want 5", outcome.PaymentID)
	}
	if outcome.BalanceDiscrepancy != "" {
		t.Errorf("unexpected discrepancy note: %q", outcome.BalanceDiscrepancy)
	}
}

func TestInterpretAutoApplyVerbatim(t *testing.T) {
	resp := &models.CreatePaymentResponse{
		PaymentID: 9,
		AutoAppliedPayments: []models.AutoAppliedPayment{
			{ID: 1, InvoiceID: 10, InvoiceNumber: "INV-010", AmountApplied: 500, InvoiceStatusAfter: "paid", RemainingInvoiceBalance: 0},
			{ID: 2, InvoiceID: 11, InvoiceNumber: "INV-011", AmountApplied: 250, InvoiceStatusAfter: "partially_paid", RemainingInvoiceBalance: 150},
		},
		AdvanceSummary: &models.AdvanceApplySummary{
			TotalAdvanceReceived:      1000,
			AmountAppliedToInvoices:   750,
			RemainingAdvanceBalance:   250,
			CustomerNewAdvanceBalance: 250,
		},
	}

	outcome := InterpretAutoApply(resp)

	if !outcome.ShowReconciliation {
		t.Fatal("auto-applied invoices must hold the reconciliation panel open")
	}
	if len(outcome.AutoAppliedPayments) != 2 {
		t.Fatalf("applied payments = %d, want 2", len(outcome.AutoAppliedPayments))
	}
	// Server figures pass through untouched, never recomputed.
	if outcome.AutoAppliedPayments[0].AmountApplied != 500 || outcome.AutoAppliedPayments[1].AmountApplied != 250 {
		t.Errorf("amounts altered: %+v", outcome.AutoAppliedPayments)
	}
	if outcome.AdvanceSummary.RemainingAdvanceBalance != 250 {
		t.Errorf("remaining_advance_balance = %v, want the server's 250", outcome.AdvanceSummary.RemainingAdvanceBalance)
	}
	if outcome.BalanceDiscrepancy != "" {
		t.Errorf("consistent summary flagged: %q", outcome.BalanceDiscrepancy)
	}
}

func TestInterpretAutoApplyFlagsDiscrepancy(t *testing.T) {
	resp := &models.CreatePaymentResponse{
		PaymentID: 3,
		AutoAppliedPayments: []models.AutoAppliedPayment{
			{ID: 1, InvoiceID: 10, AmountApplied: 700, InvoiceStatusAfter: "paid"},
		},
		AdvanceSummary: &models.AdvanceApplySummary{
			TotalAdvanceReceived:    1000,
			AmountAppliedToInvoices: 700,
			RemainingAdvanceBalance: 200, // off by 100
		},
	}

	outcome := InterpretAutoApply(resp)

	if outcome.BalanceDiscrepancy == "" {
		t.Error("expected an informational discrepancy note")
	}
	// Still display-only: the figures themselves stay as supplied.
	if outcome.AdvanceSummary.RemainingAdvanceBalance != 200 {
		t.Errorf("remaining balance corrected to %v; must stay 200", outcome.AdvanceSummary.RemainingAdvanceBalance)
	}
}
