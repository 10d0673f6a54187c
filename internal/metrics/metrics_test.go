package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Registration("confirm", "ok")
	m.Registration("confirm", "ok")
	m.Notification("smtp", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues("confirm", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("smtp", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Registration("cancel", "ok")
		m.Notification("smtp", "ok")
		m.Request("GET", "/healthz", "200", 0.01)
	})
}
