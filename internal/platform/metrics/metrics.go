package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP holds the Prometheus metrics recorded for every request.
type HTTP struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDurationMs *prometheus.HistogramVec
}

// NewHTTP creates and registers the HTTP metrics on reg, or on the default
// registerer when reg is nil.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &HTTP{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		RequestDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"route", "method"}),
	}
}

// ObserveRequest records one finished request.
func (m *HTTP) ObserveRequest(route, method, status string, durationMs float64) {
	m.RequestsTotal.WithLabelValues(route, method, status).Inc()
	m.RequestDurationMs.WithLabelValues(route, method).Observe(durationMs)
}
