package services

import (
	"reflect"
	"testing"
	"time"

	"console-backend/internal/models"
)

func TestEstimateFromInvoicesEmpty(t *testing.T) {
	summary := EstimateFromInvoices(3, nil)

	if summary.CustomerID != 3 {
		t.Errorf("customer_id = %d, want 3", summary.CustomerID)
	}
	if summary.DueAmount != 0 || summary.TotalSpent != 0 || summary.TotalPaid != 0 || summary.PrepaidAmount != 0 {
		t.Errorf("expected all-zero numeric fields, got %+v", summary)
	}
	if len(summary.OutstandingInvoices) != 0 {
		t.Errorf("outstanding = %d, want 0", len(summary.OutstandingInvoices))
	}
	if len(summary.AdvanceTransactions) != 0 {
		t.Errorf("advance transactions = %d, want 0", len(summary.AdvanceTransactions))
	}
	if !summary.Estimated {
		t.Error("expected Estimated to be set")
	}
}

func TestEstimateFromInvoices(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	invoices := []models.Invoice{
		{ID: 1, InvoiceNumber: "INV-001", TotalAmount: 500, Status: models.InvoiceStatusIssued, InvoiceDate: date},
		{ID: 2, InvoiceNumber: "INV-002", TotalAmount: 300, Status: models.InvoiceStatusPaid, InvoiceDate: date},
		{ID: 3, InvoiceNumber: "INV-003", TotalAmount: 999, Status: models.InvoiceStatusCancelled, InvoiceDate: date},
		{ID: 4, InvoiceNumber: "INV-004", TotalAmount: 200, Status: models.InvoiceStatusIssued, InvoiceDate: date},
	}

	summary := EstimateFromInvoices(1, invoices)

	if summary.TotalSpent != 1000 {
		t.Errorf("total_spent = %v, want 1000 (cancelled excluded)", summary.TotalSpent)
	}
	if summary.DueAmount != 700 {
		t.Errorf("due_amount = %v, want 700", summary.DueAmount)
	}
	if summary.TotalPaid != 300 {
		t.Errorf("total_paid = %v, want 300", summary.TotalPaid)
	}
	if len(summary.OutstandingInvoices) != 2 {
		t.Fatalf("outstanding = %d, want 2", len(summary.OutstandingInvoices))
	}
	// Issued invoices are treated as fully outstanding at their original
	// amount; partial payment state is not derivable here.
	for _, ref := range summary.OutstandingInvoices {
		if ref.DueAmount != ref.Amount {
			t.Errorf("invoice %d: due %v != amount %v", ref.InvoiceID, ref.DueAmount, ref.Amount)
		}
	}
	if summary.PrepaidAmount != 0 || len(summary.AdvanceTransactions) != 0 {
		t.Error("advance fields must be zero/empty in estimation mode")
	}
}

func TestEstimateFromInvoicesIdempotent(t *testing.T) {
	invoices := []models.Invoice{
		{ID: 1, TotalAmount: 500, Status: models.InvoiceStatusIssued},
		{ID: 2, TotalAmount: 300, Status: models.InvoiceStatusPaid},
	}
	first := EstimateFromInvoices(5, invoices)
	second := EstimateFromInvoices(5, invoices)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("estimator not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
