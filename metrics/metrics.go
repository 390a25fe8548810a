// Package metrics exposes Prometheus instrumentation for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionsActive tracks the number of live sessions in the registry.
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "url2qr_sessions_active",
		Help: "Number of live MCP sessions.",
	})

	// SessionsCreated counts sessions created by initialize requests.
	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "url2qr_sessions_created_total",
		Help: "Total sessions created by initialize requests.",
	})

	// SessionsExpired counts sessions evicted after idling past the timeout.
	SessionsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "url2qr_sessions_expired_total",
		Help: "Total sessions evicted by the expiry sweeper.",
	})

	// Conversions counts url_to_qrcode calls by result (ok or error).
	Conversions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "url2qr_conversions_total",
		Help: "URL to QR code conversions by result.",
	}, []string{"result"})

	// RequestDuration observes JSON-RPC handling time per method.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "url2qr_rpc_duration_seconds",
		Help:    "JSON-RPC request handling duration by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(
		SessionsActive,
		SessionsCreated,
		SessionsExpired,
		Conversions,
		RequestDuration,
	)
}

// Handler returns the Prometheus exposition endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
