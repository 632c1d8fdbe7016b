package handlers

import (
	"net/http"

	"console-backend/internal/erp"
	"console-backend/pkg/utils"
)

// AccountHandler serves the chart-of-accounts pickers used by the payment
// and loss-account selectors.
type AccountHandler struct {
	ERP erp.Client
}

func NewAccountHandler(client erp.Client) *AccountHandler {
	return &AccountHandler{ERP: client}
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	rootType := r.URL.Query().Get("root_type")
	isGroup := r.URL.Query().Get("is_group") == "true"

	accounts, err := h.ERP.ListAccounts(r.Context(), rootType, isGroup)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, accounts)
}
