package notify

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clixs/waitlist-api/pkg/circuitbreaker"
)

const (
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
	outcomeSkipped   = "skipped"
)

type metrics struct {
	notificationsTotal   *prometheus.CounterVec
	notificationDuration *prometheus.HistogramVec
	circuitState         *prometheus.GaugeVec
}

// newMetrics registers on reg when it is non-nil; the collectors work either way.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_notifications_total",
				Help: "Notification attempts by channel and outcome.",
			},
			[]string{"channel", "outcome"},
		),
		notificationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waitlist_notification_duration_seconds",
				Help:    "Notification channel latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"channel"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "waitlist_notification_circuit_state",
				Help: "Circuit breaker state per channel (0 closed, 1 open, 2 half-open).",
			},
			[]string{"channel"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.notificationsTotal, m.notificationDuration, m.circuitState)
	}
	return m
}

func (m *metrics) observe(o Outcome) {
	label := outcomeDelivered
	switch {
	case o.Skipped:
		label = outcomeSkipped
	case o.Err != nil:
		label = outcomeFailed
	}

	m.notificationsTotal.WithLabelValues(o.Channel, label).Inc()
	if !o.Skipped {
		m.notificationDuration.WithLabelValues(o.Channel).Observe(o.Duration.Seconds())
	}
}

func (m *metrics) setCircuitState(channel string, state circuitbreaker.CircuitState) {
	m.circuitState.WithLabelValues(channel).Set(float64(state))
}
