package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics counts wizard traffic and booking writes.
type BookingMetrics struct {
	submissions *prometheus.CounterVec
	swallowed   *prometheus.CounterVec
	steps       *prometheus.CounterVec
	followUps   *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking confirmations by backend and outcome",
		}, []string{"backend", "outcome"}),
		swallowed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "secondary_write_failures_total",
			Help:      "Secondary writes that failed without failing the booking",
		}, []string{"write"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "wizard",
			Name:      "step_transitions_total",
			Help:      "Wizard step moves by direction and whether they happened",
		}, []string{"direction", "moved"}),
		followUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "follow_ups_total",
			Help:      "Post-booking notifications by channel and status",
		}, []string{"channel", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.swallowed, m.steps, m.followUps)
	return m
}

func (m *BookingMetrics) ObserveSubmission(backend string, ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.submissions.WithLabelValues(backend, outcome).Inc()
}

func (m *BookingMetrics) ObserveSwallowed(write string) {
	if m == nil {
		return
	}
	m.swallowed.WithLabelValues(write).Inc()
}

func (m *BookingMetrics) ObserveStep(direction string, moved bool) {
	if m == nil {
		return
	}
	label := "false"
	if moved {
		label = "true"
	}
	m.steps.WithLabelValues(direction, label).Inc()
}

func (m *BookingMetrics) ObserveFollowUp(channel string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.followUps.WithLabelValues(channel, status).Inc()
}
