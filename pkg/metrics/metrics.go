// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequestDuration tracks backend request duration per operation.
	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_gateway_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"operation", "outcome"},
	)

	// GatewayRequestsTotal tracks total backend requests.
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_gateway_requests_total",
			Help: "Total backend requests",
		},
		[]string{"operation", "outcome"},
	)

	// SendsTotal tracks chat send attempts by outcome.
	SendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_sends_total",
			Help: "Total chat send attempts",
		},
		[]string{"outcome"},
	)

	// RollbacksTotal tracks optimistic entries removed after a failed send.
	RollbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_send_rollbacks_total",
			Help: "Optimistic messages rolled back after send failure",
		},
	)

	// SendInFlight tracks whether a send operation is outstanding.
	SendInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_send_in_flight",
			Help: "Whether a chat send is currently in flight",
		},
	)

	// MaskedTermsTotal tracks excluded-term matches masked from outbound text.
	MaskedTermsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_masked_terms_total",
			Help: "Excluded-term matches masked before transmission",
		},
	)
)

// RecordGatewayRequest records metrics for a backend request.
func RecordGatewayRequest(operation, outcome string, duration float64) {
	GatewayRequestDuration.WithLabelValues(operation, outcome).Observe(duration)
	GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordSend records a chat send attempt.
func RecordSend(outcome string) {
	SendsTotal.WithLabelValues(outcome).Inc()
}
