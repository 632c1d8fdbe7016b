package services

import (
	"log"
	"math"

	"console-backend/internal/models"
)

// PaymentOutcome tells the console what to do after a successful payment
// submission: close with a success toast, or hold the panel open showing
// what the ERP auto-applied.
type PaymentOutcome struct {
	PaymentID           int                         `json:"payment_id"`
	ShowReconciliation  bool                        `json:"show_reconciliation"`
	AutoAppliedPayments []models.AutoAppliedPayment `json:"auto_applied_payments,omitempty"`
	AdvanceSummary      *models.AdvanceApplySummary `json:"advance_summary,omitempty"`
	// BalanceDiscrepancy is an informational note set when the ERP's own
	// advance arithmetic does not add up. Display-only; never an error.
	BalanceDiscrepancy string `json:"balance_discrepancy,omitempty"`
}

// InterpretAutoApply maps a create-payment response to its outcome. The
// ERP's per-invoice amounts, statuses, and aggregate summary pass through
// verbatim; nothing is recomputed or corrected here, a mismatched total is
// the ERP's problem and is only flagged.
func InterpretAutoApply(resp *models.CreatePaymentResponse) *PaymentOutcome {
	outcome := &PaymentOutcome{PaymentID: resp.PaymentID}
	if len(resp.AutoAppliedPayments) == 0 {
		return outcome
	}

	outcome.ShowReconciliation = true
	outcome.AutoAppliedPayments = resp.AutoAppliedPayments
	outcome.AdvanceSummary = resp.AdvanceSummary

	if s := resp.AdvanceSummary; s != nil {
		diff := s.TotalAdvanceReceived - (s.AmountAppliedToInvoices + s.RemainingAdvanceBalance)
		if math.Abs(diff) > 0.005 {
			outcome.BalanceDiscrepancy = "advance totals reported by the server do not reconcile"
			log.Printf("[AutoApply] payment %d: advance summary off by %.2f (received=%.2f applied=%.2f remaining=%.2f)",
				resp.PaymentID, diff, s.TotalAdvanceReceived, s.AmountAppliedToInvoices, s.RemainingAdvanceBalance)
		}
	}
	return outcome
}
