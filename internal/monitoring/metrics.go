package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API client's Prometheus collectors
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ConnectRetries  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates collectors on a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wpapi_requests_total",
				Help: "Total number of API calls by outcome",
			},
			[]string{"method", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wpapi_request_duration_seconds",
				Help:    "API call duration in seconds, retries included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		ConnectRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wpapi_connect_retries_total",
				Help: "Total number of attempts repeated after a connection failure",
			},
			[]string{"method"},
		),
	}
}

// ObserveRequest records one finished call
func (m *Metrics) ObserveRequest(method, outcome string, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, outcome).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveRetry records one connection retry
func (m *Metrics) ObserveRetry(method string) {
	m.ConnectRetries.WithLabelValues(method).Inc()
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
