package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	BuildEvents   prometheus.Counter
	Notifications *prometheus.CounterVec
}

// NewMetrics creates the notifier's collectors and registers them with the given registerer
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		BuildEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifier_build_events_total",
			Help: "The total number of processed build events",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_notifications_total",
			Help: "Notification attempts by build transition and delivery status",
		}, []string{"transition", "status"}),
	}
	registerer.MustRegister(m.BuildEvents, m.Notifications)
	return m
}
