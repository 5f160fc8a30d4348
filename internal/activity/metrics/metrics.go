package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the activity module. Counters track
// roster mutations; the histogram covers end-to-end request latency.
type Metrics struct {
	Signups         prometheus.Counter
	Unregistrations prometheus.Counter
	Conflicts       prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates a Metrics instance registered on the default registry. Call it
// once per process; promauto panics on duplicate registration.
func New() *Metrics {
	return &Metrics{
		Signups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mergington_signups_total",
			Help: "Total number of successful activity signups",
		}),
		Unregistrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mergington_unregistrations_total",
			Help: "Total number of successful activity unregistrations",
		}),
		Conflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mergington_roster_conflicts_total",
			Help: "Total number of duplicate signups and missing unregistrations rejected",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mergington_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
	}
}

// IncrementSignups records a successful signup.
func (m *Metrics) IncrementSignups() {
	if m != nil {
		m.Signups.Inc()
	}
}

// IncrementUnregistrations records a successful unregistration.
func (m *Metrics) IncrementUnregistrations() {
	if m != nil {
		m.Unregistrations.Inc()
	}
}

// IncrementConflicts records a rejected roster mutation.
func (m *Metrics) IncrementConflicts() {
	if m != nil {
		m.Conflicts.Inc()
	}
}

// ObserveRequest records the duration of one HTTP request. Call with
// time.Now() captured at the start of the request.
func (m *Metrics) ObserveRequest(method, route string, start time.Time) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
