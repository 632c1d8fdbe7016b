package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"console-backend/internal/models"
)

// fakeERP is the in-memory erp.Client used across the service tests
type fakeERP struct {
	mu sync.Mutex

	summaryRaw  json.RawMessage
	summaryErr  error
	paymentsRaw json.RawMessage
	paymentsErr error
	invoices    []models.Invoice
	invoicesErr error
	accounts    []models.Account

	createResp *models.CreatePaymentResponse
	createErr  error
	lastCreate *models.CreateCustomerPaymentRequest

	sales     map[int]*models.Sale
	saleErrs  map[int]error
	saleCalls map[int]int
}

func newFakeERP() *fakeERP {
	return &fakeERP{
		sales:     make(map[int]*models.Sale),
		saleErrs:  make(map[int]error),
		saleCalls: make(map[int]int),
	}
}

func (f *fakeERP) GetPaymentSummary(context.Context, int) (json.RawMessage, error) {
	return f.summaryRaw, f.summaryErr
}

func (f *fakeERP) ListCustomerPayments(context.Context, int) (json.RawMessage, error) {
	return f.paymentsRaw, f.paymentsErr
}

func (f *fakeERP) ListInvoices(context.Context, int, string) ([]models.Invoice, error) {
	return f.invoices, f.invoicesErr
}

func (f *fakeERP) CreateCustomerPayment(_ context.Context, req *models.CreateCustomerPaymentRequest) (*models.CreatePaymentResponse, error) {
	f.mu.Lock()
	f.lastCreate = req
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResp != nil {
		return f.createResp, nil
	}
	return &models.CreatePaymentResponse{PaymentID: 1}, nil
}

func (f *fakeERP) ListAccounts(context.Context, string, bool) ([]models.Account, error) {
	return f.accounts, nil
}

func (f *fakeERP) GetSale(_ context.Context, saleID int) (*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saleCalls[saleID]++
	if err, ok := f.saleErrs[saleID]; ok {
		return nil, err
	}
	sale, ok := f.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("sale %d not found", saleID)
	}
	return sale, nil
}

func (f *fakeERP) Ping(context.Context) error { return nil }

func (f *fakeERP) saleCallCount(saleID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saleCalls[saleID]
}
