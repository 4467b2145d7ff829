package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts API requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dental_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dental_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// StockAlertsActive tracks the number of inventory items currently in an
	// alert state, labelled by alert kind.
	StockAlertsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dental_stock_alerts_active",
			Help: "Inventory items currently in an alert state",
		},
		[]string{"kind"},
	)

	// AlertEmailsTotal counts inventory alert emails by outcome.
	AlertEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dental_alert_emails_total",
			Help: "Inventory alert emails sent, by outcome",
		},
		[]string{"outcome"},
	)
)
