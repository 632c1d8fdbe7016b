package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"console-backend/internal/erp"
	"console-backend/internal/metrics"
	"console-backend/internal/services"
	"console-backend/pkg/utils"
)

// Status-specific user messages for upstream failures. 404 means the
// console points at the wrong ERP endpoint (a configuration problem);
// 5xx is the ERP's own fault. Both guide support escalation differently.
const (
	msgUpstreamNotFound = "The payment service endpoint was not found. Check the ERP configuration."
	msgUpstreamFault    = "The server failed to process the request. Try again, or contact support if it persists."
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// CreatePayment validates the submission, forwards it to the ERP, and
// returns the interpreted outcome. Any failure leaves correction to the
// caller; nothing is partially submitted.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	var sub services.PaymentSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.Payments.Submit(r.Context(), id, &sub)
	if err != nil {
		metrics.PaymentSubmissionsTotal.WithLabelValues(string(sub.PaymentType), "error").Inc()

		var vf *services.ValidationFailed
		if errors.As(err, &vf) {
			utils.FieldErrors(w, vf.Fields)
			return
		}
		writeUpstreamError(w, err)
		return
	}

	metrics.PaymentSubmissionsTotal.WithLabelValues(string(sub.PaymentType), "ok").Inc()
	utils.JSON(w, http.StatusCreated, outcome)
}

// writeUpstreamError maps ERP client errors to user-facing responses
func writeUpstreamError(w http.ResponseWriter, err error) {
	if ve, ok := erp.AsValidationError(err); ok {
		utils.Error(w, http.StatusUnprocessableEntity, ve.Error())
		return
	}
	switch {
	case errors.Is(err, erp.ErrNotFound):
		utils.Error(w, http.StatusBadGateway, msgUpstreamNotFound)
	case errors.Is(err, erp.ErrServerFault):
		utils.Error(w, http.StatusBadGateway, msgUpstreamFault)
	default:
		utils.Error(w, http.StatusBadGateway, msgUpstreamFault)
	}
}
