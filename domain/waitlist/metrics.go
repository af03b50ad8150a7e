package waitlist

import "github.com/prometheus/client_golang/prometheus"

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
)

type submissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
}

func newSubmissionMetrics(reg prometheus.Registerer) *submissionMetrics {
	m := &submissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_submissions_total",
				Help: "Waitlist submissions by validation result.",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.submissionsTotal)
	}
	return m
}

func (m *submissionMetrics) observe(result string) {
	m.submissionsTotal.WithLabelValues(result).Inc()
}
