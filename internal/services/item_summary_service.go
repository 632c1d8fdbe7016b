package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"console-backend/internal/cache"
	"console-backend/internal/erp"
	"console-backend/internal/metrics"
	"console-backend/internal/models"
)

const saleItemsKeyPrefix = "console:sale-items:"

// ItemSummaryService resolves human-readable line-item descriptions for
// invoices. Embedded metadata is preferred; otherwise the referenced sale
// is fetched once per unique id, memoized through the injected cache.
type ItemSummaryService struct {
	ERP   erp.Client
	Cache cache.Cache
	TTL   time.Duration
}

func NewItemSummaryService(client erp.Client, c cache.Cache, ttl time.Duration) *ItemSummaryService {
	return &ItemSummaryService{ERP: client, Cache: c, TTL: ttl}
}

// ResolveItemSummaries returns a summary string per invoice id. Sale
// fetches run concurrently, deduplicated per sale id; a failed fetch is
// logged and skipped, so partial results are expected rather than an error.
func (s *ItemSummaryService) ResolveItemSummaries(ctx context.Context, invoices []models.Invoice) map[int]string {
	result := make(map[int]string, len(invoices))
	var resultMu sync.Mutex

	// Sale id -> invoices that need it. Invoices with embedded items never
	// hit the network.
	pending := make(map[int][]int)
	for _, inv := range invoices {
		if inv.Metadata != nil && len(inv.Metadata.Items) > 0 {
			result[inv.ID] = FormatItemSummary(inv.Metadata.Items)
			continue
		}
		if inv.SaleID == nil {
			continue
		}
		pending[*inv.SaleID] = append(pending[*inv.SaleID], inv.ID)
	}

	var wg sync.WaitGroup
	for saleID, invoiceIDs := range pending {
		key := saleItemsKeyPrefix + strconv.Itoa(saleID)
		if summary, ok := s.Cache.Get(ctx, key); ok {
			metrics.CacheHitsTotal.Inc()
			resultMu.Lock()
			for _, id := range invoiceIDs {
				result[id] = summary
			}
			resultMu.Unlock()
			continue
		}
		metrics.CacheMissesTotal.Inc()

		wg.Add(1)
		go func(saleID int, key string, invoiceIDs []int) {
			defer wg.Done()
			sale, err := s.ERP.GetSale(ctx, saleID)
			if err != nil {
				log.Printf("[ItemSummary] sale %d fetch failed: %v", saleID, err)
				return
			}
			summary := FormatItemSummary(sale.Items)
			s.Cache.Set(ctx, key, summary, s.TTL)

			resultMu.Lock()
			for _, id := range invoiceIDs {
				result[id] = summary
			}
			resultMu.Unlock()
		}(saleID, key, invoiceIDs)
	}
	wg.Wait()

	return result
}

// Invalidate drops the cached summary for one sale
func (s *ItemSummaryService) Invalidate(ctx context.Context, saleID int) {
	s.Cache.Delete(ctx, saleItemsKeyPrefix+strconv.Itoa(saleID))
}

// FormatItemSummary renders items as a comma-joined "qty unit name" list
func FormatItemSummary(items []models.SaleItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
		if item.Unit != "" {
			parts = append(parts, fmt.Sprintf("%s %s %s", qty, item.Unit, item.Name))
		} else {
			parts = append(parts, fmt.Sprintf("%s %s", qty, item.Name))
		}
	}
	return strings.Join(parts, ", ")
}
