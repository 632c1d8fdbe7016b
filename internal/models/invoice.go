package models

import "time"

// Invoice statuses as reported by the ERP
const (
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusRefunded  = "refunded"
)

// Invoice represents an invoice record fetched from the ERP
type Invoice struct {
	ID            int              `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	CustomerID    int              `json:"customer_id"`
	TotalAmount   float64          `json:"total_amount"`
	DueAmount     float64          `json:"due_amount"`
	Status        string           `json:"status"`
	InvoiceDate   time.Time        `json:"invoice_date"`
	SaleID        *int             `json:"sale_id,omitempty"`
	Metadata      *InvoiceMetadata `json:"metadata,omitempty"`
}

// InvoiceMetadata carries optional embedded detail; when Items is present
// the line-item summary can be built without fetching the sale.
type InvoiceMetadata struct {
	Items []SaleItem `json:"items,omitempty"`
}

// Sale is the sale record an invoice references, fetched only to resolve
// line-item descriptions.
type Sale struct {
	ID    int        `json:"id"`
	Items []SaleItem `json:"items"`
}

// SaleItem is one line of a sale
type SaleItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}
