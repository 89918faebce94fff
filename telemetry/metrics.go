package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/takakv/bpattest/relativity"
)

// Metrics counts verification activity.
type Metrics struct {
	responses       *prometheus.CounterVec
	honestyFailures prometheus.Counter
	sessions        *prometheus.CounterVec
}

// NewMetrics registers the counters with reg. A nil reg uses a private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bpattest_challenge_responses_total",
			Help: "Challenge responses received, by category",
		}, []string{"category"}),
		honestyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "bpattest_honesty_check_failures_total",
			Help: "Planted honesty checks answered incorrectly",
		}),
		sessions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bpattest_sessions_total",
			Help: "Finished verification sessions, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveResponse(c relativity.Category) {
	m.responses.WithLabelValues(c.String()).Inc()
}

func (m *Metrics) ObserveHonestyFailure() {
	m.honestyFailures.Inc()
}

// ObserveSession records a finished session; outcome is one of "honest",
// "dishonest" or "failed".
func (m *Metrics) ObserveSession(outcome string) {
	m.sessions.WithLabelValues(outcome).Inc()
}
