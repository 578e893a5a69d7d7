package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registry transitions and refusals.
type Metrics struct {
	Registrations      *prometheus.CounterVec
	Votes              *prometheus.CounterVec
	Fundings           prometheus.Counter
	FundedAmount       prometheus.Counter
	Rejections         *prometheus.CounterVec
	RegisteredAirlines prometheus.Gauge
	Operational        prometheus.Gauge
	OperationLatency   *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_airline_registrations_total",
			Help: "Airlines registered, by admission path",
		}, []string{"path"}),
		Votes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_registration_votes_total",
			Help: "Consensus votes received, by whether they changed the tally",
		}, []string{"result"}),
		Fundings: f.NewCounter(prometheus.CounterOpts{
			Name: "surety_airline_fundings_total",
			Help: "Airlines promoted to funded",
		}),
		FundedAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "surety_funded_amount_total",
			Help: "Sum of accepted funding amounts",
		}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_rejections_total",
			Help: "Refused mutating calls, by operation and reason",
		}, []string{"operation", "reason"}),
		RegisteredAirlines: f.NewGauge(prometheus.GaugeOpts{
			Name: "surety_registered_airlines",
			Help: "Current number of registered airlines",
		}),
		Operational: f.NewGauge(prometheus.GaugeOpts{
			Name: "surety_operational",
			Help: "1 when the contract is operational, 0 otherwise",
		}),
		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "surety_operation_duration_seconds",
			Help:    "Latency of registry operations including lock wait",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncRegistration(consensus bool) {
	path := "unilateral"
	if consensus {
		path = "consensus"
	}
	m.Registrations.WithLabelValues(path).Inc()
}

func (m *Metrics) IncVote(added bool) {
	result := "counted"
	if !added {
		result = "duplicate"
	}
	m.Votes.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveFunding(amount uint64) {
	m.Fundings.Inc()
	m.FundedAmount.Add(float64(amount))
}

func (m *Metrics) IncRejection(operation, reason string) {
	m.Rejections.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) SetRegisteredAirlines(n int) {
	m.RegisteredAirlines.Set(float64(n))
}

func (m *Metrics) SetOperational(ok bool) {
	if ok {
		m.Operational.Set(1)
		return
	}
	m.Operational.Set(0)
}

func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
}
