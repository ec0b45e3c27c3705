package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK        = "ok"
	OutcomeBadStatus = "bad_status"
	OutcomeError     = "error"
)

var (
	vendorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_requests_total",
			Help: "Total number of outgoing vendor API requests.",
		},
		[]string{"vendor", "outcome"},
	)
	vendorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_request_duration_seconds",
			Help:    "Histogram of vendor API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"vendor", "outcome"},
	)
	catalogFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fallbacks_total",
			Help: "Total number of catalog requests served from mock data.",
		},
		[]string{"reason"},
	)
	newsCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_requests_total",
			Help: "News cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(vendorRequestsTotal)
	prometheus.MustRegister(vendorRequestDuration)
	prometheus.MustRegister(catalogFallbacksTotal)
	prometheus.MustRegister(newsCacheTotal)
}

func RecordVendorRequest(vendor, outcome string, duration time.Duration) {
	vendorRequestsTotal.WithLabelValues(vendor, outcome).Inc()
	vendorRequestDuration.WithLabelValues(vendor, outcome).Observe(duration.Seconds())
}

func RecordFallback(reason string) {
	catalogFallbacksTotal.WithLabelValues(reason).Inc()
}

func RecordNewsCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	newsCacheTotal.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler exporting Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
