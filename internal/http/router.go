package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"console-backend/internal/handlers"
	"console-backend/internal/middleware"
)

func NewRouter(
	customerAccountHandler *handlers.CustomerAccountHandler,
	paymentHandler *handlers.PaymentHandler,
	accountHandler *handlers.AccountHandler,
	healthHandler *handlers.HealthHandler,
	requestLogging *middleware.RequestLoggingMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)
	r.Use(requestLogging.Handler)

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Customer account reconciliation
	api.HandleFunc("/customers/{customer_id}/account-summary", customerAccountHandler.GetAccountSummary).Methods("GET")
	api.HandleFunc("/customers/{customer_id}/payments", customerAccountHandler.ListPayments).Methods("GET")
	api.HandleFunc("/customers/{customer_id}/invoices", customerAccountHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/customers/{customer_id}/invoice-items", customerAccountHandler.GetInvoiceItemSummaries).Methods("GET")

	// Payment submission
	api.HandleFunc("/customers/{customer_id}/payments", paymentHandler.CreatePayment).Methods("POST")

	// Account pickers
	api.HandleFunc("/accounts", accountHandler.ListAccounts).Methods("GET")

	return r
}
