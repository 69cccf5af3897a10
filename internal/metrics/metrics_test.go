package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCounters(t *testing.T) {
	m := NewBookingMetrics(prometheus.NewRegistry())

	m.ObserveSubmission("relational", true)
	m.ObserveSubmission("relational", false)
	m.ObserveSubmission("relational", true)
	m.ObserveSwallowed("intake")
	m.ObserveStep("next", false)
	m.ObserveFollowUp("email", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("relational", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("relational", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.swallowed.WithLabelValues("intake")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.steps.WithLabelValues("next", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.followUps.WithLabelValues("email", "error")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission("document", true)
		m.ObserveSwallowed("join")
		m.ObserveStep("prev", true)
		m.ObserveFollowUp("event", nil)
	})
}
