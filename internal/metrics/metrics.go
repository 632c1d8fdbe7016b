package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_http_requests_total",
		Help: "HTTP requests served, by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	SummaryFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "console_summary_fallbacks_total",
		Help: "Account summaries served from the invoice estimator instead of the payment-summary endpoint",
	})

	PaymentSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "console_payment_submissions_total",
		Help: "Payment submissions forwarded to the ERP, by type and outcome",
	}, []string{"payment_type", "outcome"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "console_cache_hits_total",
		Help: "Item-summary cache hits",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "console_cache_misses_total",
		Help: "Item-summary cache misses",
	})
)
