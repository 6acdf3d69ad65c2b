package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the SDK client. Following the
// explicit dependency injection pattern, this struct is passed to the
// components that need to record metrics; a nil *Metrics disables recording.
type Metrics struct {
	// History service metrics
	historyRequestsTotal   *prometheus.CounterVec
	historyRequestDuration *prometheus.HistogramVec

	// Decoding metrics
	transactionsDecodedTotal *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		historyRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kin_history_requests_total",
				Help: "Total number of history service requests by method and status",
			},
			[]string{"method", "status"},
		),
		historyRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kin_history_request_duration_seconds",
				Help:    "Duration of history service requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method"},
		),
		transactionsDecodedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kin_transactions_decoded_total",
				Help: "Total number of transactions decoded by ledger format and outcome",
			},
			[]string{"format", "outcome"},
		),
	}
}

// RecordHistoryRequest records a history service request with duration.
func (m *Metrics) RecordHistoryRequest(method, status string, duration float64) {
	if m == nil {
		return
	}
	m.historyRequestsTotal.WithLabelValues(method, status).Inc()
	m.historyRequestDuration.WithLabelValues(method).Observe(duration)
}

// RecordTransactionDecoded records a transaction decode attempt.
func (m *Metrics) RecordTransactionDecoded(format, outcome string) {
	if m == nil {
		return
	}
	m.transactionsDecodedTotal.WithLabelValues(format, outcome).Inc()
}
