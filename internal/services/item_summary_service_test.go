package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"console-backend/internal/cache"
	"console-backend/internal/models"
)

func itemSummaryFixture() (*fakeERP, *ItemSummaryService) {
	erpFake := newFakeERP()
	erpFake.sales[100] = &models.Sale{ID: 100, Items: []models.SaleItem{
		{Name: "rice", Quantity: 2, Unit: "kg"},
		{Name: "oil", Quantity: 1, Unit: "ltr"},
	}}
	svc := NewItemSummaryService(erpFake, cache.NewMemory(), time.Minute)
	return erpFake, svc
}

func TestResolveItemSummariesPrefersEmbeddedMetadata(t *testing.T) {
	erpFake, svc := itemSummaryFixture()
	saleID := 100
	invoices := []models.Invoice{
		{ID: 1, SaleID: &saleID, Metadata: &models.InvoiceMetadata{Items: []models.SaleItem{
			{Name: "salt", Quantity: 3, Unit: "pkt"},
		}}},
	}

	result := svc.ResolveItemSummaries(context.Background(), invoices)

	if got := result[1]; got != "3 pkt salt" {
		t.Errorf("summary = %q, want %q", got, "3 pkt salt")
	}
	if erpFake.saleCallCount(100) != 0 {
		t.Error("embedded metadata must avoid the sale fetch")
	}
}

func TestResolveItemSummariesDeduplicatesFetches(t *testing.T) {
	erpFake, svc := itemSummaryFixture()
	saleID := 100
	invoices := []models.Invoice{
		{ID: 1, SaleID: &saleID},
		{ID: 2, SaleID: &saleID},
		{ID: 3, SaleID: &saleID},
	}

	result := svc.ResolveItemSummaries(context.Background(), invoices)

	want := "2 kg rice, 1 ltr oil"
	for _, id := range []int{1, 2, 3} {
		if result[id] != want {
			t.Errorf("invoice %d summary = %q, want %q", id, result[id], want)
		}
	}
	if calls := erpFake.saleCallCount(100); calls != 1 {
		t.Errorf("sale fetched %d times, want 1", calls)
	}

	// A second batch is served from the cache without refetching
	svc.ResolveItemSummaries(context.Background(), invoices)
	if calls := erpFake.saleCallCount(100); calls != 1 {
		t.Errorf("sale fetched %d times after second batch, want 1", calls)
	}
}

func TestResolveItemSummariesPartialFailure(t *testing.T) {
	erpFake, svc := itemSummaryFixture()
	erpFake.saleErrs[200] = errors.New("sale service down")
	okSale, badSale := 100, 200
	invoices := []models.Invoice{
		{ID: 1, SaleID: &okSale},
		{ID: 2, SaleID: &badSale},
	}

	result := svc.ResolveItemSummaries(context.Background(), invoices)

	if _, ok := result[1]; !ok {
		t.Error("healthy sale missing from partial result")
	}
	if _, ok := result[2]; ok {
		t.Error("failed sale must be skipped, not reported")
	}
}

func TestResolveItemSummariesSkipsInvoicesWithoutSale(t *testing.T) {
	_, svc := itemSummaryFixture()
	invoices := []models.Invoice{{ID: 1}}

	result := svc.ResolveItemSummaries(context.Background(), invoices)
	if len(result) != 0 {
		t.Errorf("expected empty result, got %v", result)
	}
}

func TestInvalidateDropsCachedSummary(t *testing.T) {
	erpFake, svc := itemSummaryFixture()
	saleID := 100
	invoices := []models.Invoice{{ID: 1, SaleID: &saleID}}

	svc.ResolveItemSummaries(context.Background(), invoices)
	svc.Invalidate(context.Background(), saleID)
	svc.ResolveItemSummaries(context.Background(), invoices)

	if calls := erpFake.saleCallCount(100); calls != 2 {
		t.Errorf("sale fetched %d times, want 2 after invalidation", calls)
	}
}

func TestFormatItemSummary(t *testing.T) {
	tests := []struct {
		name  string
		items []models.SaleItem
		want  string
	}{
		{"empty", nil, ""},
		{"single", []models.SaleItem{{Name: "rice", Quantity: 2, Unit: "kg"}}, "2 kg rice"},
		{"fractional quantity", []models.SaleItem{{Name: "oil", Quantity: 1.5, Unit: "ltr"}}, "1.5 ltr oil"},
		{"no unit", []models.SaleItem{{Name: "crate", Quantity: 4}}, "4 crate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatItemSummary(tt.items); got != tt.want {
				t.Errorf("FormatItemSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
