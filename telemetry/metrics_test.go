package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/takakv/bpattest/relativity"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveResponse(relativity.CategoryOne)
	m.ObserveResponse(relativity.CategoryOne)
	m.ObserveResponse(relativity.CategoryUnknown)
	m.ObserveHonestyFailure()
	m.ObserveSession("honest")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.responses.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.responses.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.honestyFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessions.WithLabelValues("honest")))
}

func TestMetricsPrivateRegistry(t *testing.T) {
	// Two instances must not collide on registration.
	a := NewMetrics(nil)
	b := NewMetrics(nil)
	a.ObserveHonestyFailure()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.honestyFailures))
}
