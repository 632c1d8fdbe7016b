package services

import "console-backend/internal/models"

// EstimateFromInvoices derives an account summary from the invoice list
// alone, used when no payment-summary response is available. Every issued
// invoice is treated as fully outstanding at its original amount; partial
// payments are not derivable from invoice status, so this is a documented
// precision loss. Advance fields are always zero/empty in this mode.
//
// Total on any input, including an empty list.
func EstimateFromInvoices(customerID int, invoices []models.Invoice) *models.AccountSummary {
	summary := &models.AccountSummary{
		CustomerID:          customerID,
		OutstandingInvoices: []models.OutstandingInvoiceRef{},
		AdvanceTransactions: []models.AdvanceTransaction{},
		Estimated:           true,
	}

	for _, inv := range invoices {
		if inv.Status == models.InvoiceStatusCancelled {
			continue
		}
		summary.TotalSpent += inv.TotalAmount

		switch inv.Status {
		case models.InvoiceStatusIssued:
			summary.DueAmount += inv.TotalAmount
			summary.OutstandingInvoices = append(summary.OutstandingInvoices, models.OutstandingInvoiceRef{
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Amount:        inv.TotalAmount,
				DueAmount:     inv.TotalAmount,
				InvoiceDate:   inv.InvoiceDate,
				Status:        inv.Status,
			})
		case models.InvoiceStatusPaid:
			summary.TotalPaid += inv.TotalAmount
		}
	}

	return summary
}
