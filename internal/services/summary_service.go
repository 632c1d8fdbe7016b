package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"console-backend/internal/erp"
	"console-backend/internal/metrics"
	"console-backend/internal/models"
)

// rawObject is one level of an undecoded JSON object
type rawObject map[string]json.RawMessage

// summaryCandidates are the places a payment-summary object may live inside
// an ERP response, probed in priority order. First structural match wins.
var summaryCandidates = []struct {
	name string
	path []string
}{
	{"root", nil},
	{"data", []string{"data"}},
	{"payment_summary", []string{"payment_summary"}},
	{"data.payment_summary", []string{"data", "payment_summary"}},
}

// summaryFields mirrors the summary object's wire fields. Pointer numerics
// distinguish "absent" from zero so server-supplied values stay
// authoritative over the computed fallback.
type summaryFields struct {
	CustomerID          int                            `json:"customer_id"`
	DueAmount           float64                        `json:"due_amount"`
	PrepaidAmount       *float64                       `json:"prepaid_amount"`
	AdvanceBalance      *float64                       `json:"advance_balance"`
	TotalSpent          float64                        `json:"total_spent"`
	TotalPaid           float64                        `json:"total_paid"`
	OutstandingInvoices []models.OutstandingInvoiceRef `json:"outstanding_invoices"`
	AdvanceTransactions json.RawMessage                `json:"advance_transactions"`
}

// NormalizeSummary turns a shape-variable payment-summary response into a
// canonical AccountSummary. Returns nil when no candidate location holds a
// structurally valid summary; that is "no data yet", not an error, and the
// caller falls back to the invoice estimator.
func NormalizeSummary(raw json.RawMessage) *models.AccountSummary {
	var root rawObject
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil
	}

	for _, candidate := range summaryCandidates {
		obj, ok := descend(root, candidate.path)
		if !ok || !looksLikeSummary(obj) {
			continue
		}
		return buildSummary(obj)
	}
	return nil
}

func descend(obj rawObject, path []string) (rawObject, bool) {
	for _, key := range path {
		child, ok := obj[key]
		if !ok {
			return nil, false
		}
		var next rawObject
		if err := json.Unmarshal(child, &next); err != nil {
			return nil, false
		}
		obj = next
	}
	return obj, true
}

// looksLikeSummary is the structural predicate for a summary candidate
func looksLikeSummary(obj rawObject) bool {
	for _, field := range []string{"customer_id", "due_amount", "total_spent"} {
		if _, ok := obj[field]; !ok {
			return false
		}
	}
	return true
}

func buildSummary(obj rawObject) *models.AccountSummary {
	encoded, err := json.Marshal(obj)
	if err != nil {
		return nil
	}
	var fields summaryFields
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil
	}

	txs := decodeAdvanceTransactions(fields.AdvanceTransactions)

	var prepaid float64
	switch {
	case fields.PrepaidAmount != nil:
		prepaid = *fields.PrepaidAmount
	case fields.AdvanceBalance != nil:
		prepaid = *fields.AdvanceBalance
	default:
		prepaid = ComputeAdvanceBalance(txs)
	}

	outstanding := fields.OutstandingInvoices
	if outstanding == nil {
		outstanding = []models.OutstandingInvoiceRef{}
	}

	return &models.AccountSummary{
		CustomerID:          fields.CustomerID,
		DueAmount:           fields.DueAmount,
		PrepaidAmount:       prepaid,
		TotalSpent:          fields.TotalSpent,
		TotalPaid:           fields.TotalPaid,
		OutstandingInvoices: outstanding,
		AdvanceTransactions: txs,
	}
}

// decodeAdvanceTransactions defaults to an empty log on absence or malformed
// input rather than failing the whole summary
func decodeAdvanceTransactions(raw json.RawMessage) []models.AdvanceTransaction {
	if len(raw) == 0 {
		return []models.AdvanceTransaction{}
	}
	var txs []models.AdvanceTransaction
	if err := json.Unmarshal(raw, &txs); err != nil || txs == nil {
		return []models.AdvanceTransaction{}
	}
	return txs
}

// ComputeAdvanceBalance derives net usable credit from the transaction log:
// received minus used minus refunded. Used only when the ERP omits a
// precomputed prepaid/advance balance.
func ComputeAdvanceBalance(txs []models.AdvanceTransaction) float64 {
	var balance float64
	for _, tx := range txs {
		switch tx.TransactionType {
		case models.AdvanceReceived:
			balance += tx.Amount
		case models.AdvanceUsed, models.AdvanceRefunded:
			balance -= tx.Amount
		}
	}
	return balance
}

// ExtractPayments normalizes a payments-list response: a bare array,
// {data: [...]}, {payments: [...]}, or {data: {payments: [...]}} all yield
// the same list. Unrecognized shapes yield an empty list.
func ExtractPayments(raw json.RawMessage) []models.CustomerPayment {
	var bare []models.CustomerPayment
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == nil {
			return []models.CustomerPayment{}
		}
		return bare
	}

	var root rawObject
	if err := json.Unmarshal(raw, &root); err != nil {
		return []models.CustomerPayment{}
	}
	for _, path := range [][]string{{"data"}, {"payments"}, {"data", "payments"}} {
		parent, ok := descend(root, path[:len(path)-1])
		if !ok {
			continue
		}
		child, ok := parent[path[len(path)-1]]
		if !ok {
			continue
		}
		var list []models.CustomerPayment
		if err := json.Unmarshal(child, &list); err == nil && list != nil {
			return list
		}
	}
	return []models.CustomerPayment{}
}

// SummaryService produces the reconciled account view for a customer
type SummaryService struct {
	ERP erp.Client
}

func NewSummaryService(client erp.Client) *SummaryService {
	return &SummaryService{ERP: client}
}

// GetAccountSummary fetches and normalizes the customer's payment summary,
// falling back to estimation from the invoice list when the summary
// endpoint fails or returns an unusable shape. The fallback is degraded but
// never fatal; only a failure of both sources errors.
func (s *SummaryService) GetAccountSummary(ctx context.Context, customerID int) (*models.AccountSummary, error) {
	raw, err := s.ERP.GetPaymentSummary(ctx, customerID)
	if err == nil {
		if summary := NormalizeSummary(raw); summary != nil {
			return summary, nil
		}
		log.Printf("[Summary] customer %d: no usable summary shape, estimating from invoices", customerID)
	} else {
		log.Printf("[Summary] customer %d: summary fetch failed (%v), estimating from invoices", customerID, err)
	}
	metrics.SummaryFallbacksTotal.Inc()

	invoices, err := s.ERP.ListInvoices(ctx, customerID, "sales")
	if err != nil {
		return nil, fmt.Errorf("account summary unavailable for customer %d: %w", customerID, err)
	}
	return EstimateFromInvoices(customerID, invoices), nil
}

// ListPayments returns the customer's normalized payment history
func (s *SummaryService) ListPayments(ctx context.Context, customerID int) ([]models.CustomerPayment, error) {
	raw, err := s.ERP.ListCustomerPayments(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ExtractPayments(raw), nil
}
