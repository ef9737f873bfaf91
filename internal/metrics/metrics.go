package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pharma_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pharma_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DemandesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharma_demandes_created_total",
			Help: "Total restock requests created",
		},
	)

	DemandeTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pharma_demande_transitions_total",
			Help: "Demande status transitions by target status",
		},
		[]string{"status"},
	)

	StockIncrementsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pharma_stock_increments_total",
			Help: "Stock credits applied by received demandes",
		},
	)
)
