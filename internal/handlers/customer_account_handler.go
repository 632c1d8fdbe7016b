package handlers

import (
	"net/http"
	"strconv"

	"console-backend/internal/erp"
	"console-backend/internal/services"
	"console-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// CustomerAccountHandler serves the reconciliation reads for a customer:
// the account summary, payment history, invoices, and item summaries.
type CustomerAccountHandler struct {
	Summaries    *services.SummaryService
	ItemSummaries *services.ItemSummaryService
	ERP          erp.Client
}

func NewCustomerAccountHandler(summaries *services.SummaryService, itemSummaries *services.ItemSummaryService, client erp.Client) *CustomerAccountHandler {
	return &CustomerAccountHandler{Summaries: summaries, ItemSummaries: itemSummaries, ERP: client}
}

func customerID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["customer_id"])
	return id, err == nil && id > 0
}

func (h *CustomerAccountHandler) GetAccountSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	summary, err := h.Summaries.GetAccountSummary(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *CustomerAccountHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	payments, err := h.Summaries.ListPayments(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

func (h *CustomerAccountHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	invoices, err := h.ERP.ListInvoices(r.Context(), id, r.URL.Query().Get("type"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

func (h *CustomerAccountHandler) GetInvoiceItemSummaries(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	invoices, err := h.ERP.ListInvoices(r.Context(), id, r.URL.Query().Get("type"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	// Partial results are fine; failed sale lookups are logged and skipped.
	summaries := h.ItemSummaries.ResolveItemSummaries(r.Context(), invoices)
	utils.JSON(w, http.StatusOK, summaries)
}
