package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds transport-level Prometheus collectors.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	Responses      *prometheus.CounterVec
}

// New creates and registers the HTTP collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "surety_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Responses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_http_responses_total",
			Help: "HTTP responses by route pattern and status code",
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) ObserveRequest(route, method string, code int, d time.Duration) {
	m.RequestLatency.WithLabelValues(route, method).Observe(d.Seconds())
	m.Responses.WithLabelValues(route, statusClass(code)).Inc()
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
