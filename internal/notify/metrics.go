package notify

import "github.com/prometheus/client_golang/prometheus"

type hubMetrics struct {
	published *prometheus.CounterVec
	delivered *prometheus.CounterVec
	dropped   *prometheus.CounterVec
}

// newHubMetrics registers the hub counters on the given registry. A nil
// registry disables instrumentation.
func newHubMetrics(registry *prometheus.Registry) *hubMetrics {
	if registry == nil {
		return nil
	}

	m := &hubMetrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notify_events_published_total",
				Help: "Total number of events published by event name",
			},
			[]string{"event"},
		),
		delivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notify_events_delivered_total",
				Help: "Total number of events delivered to subscribers by event name",
			},
			[]string{"event"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notify_events_dropped_total",
				Help: "Total number of events dropped due to full subscriber buffers",
			},
			[]string{"event"},
		),
	}

	registry.MustRegister(m.published, m.delivered, m.dropped)
	return m
}

func (m *hubMetrics) IncrementPublished(event string) {
	if m != nil && m.published != nil {
		m.published.WithLabelValues(event).Inc()
	}
}

func (m *hubMetrics) IncrementDelivered(event string) {
	if m != nil && m.delivered != nil {
		m.delivered.WithLabelValues(event).Inc()
	}
}

func (m *hubMetrics) IncrementDropped(event string) {
	if m != nil && m.dropped != nil {
		m.dropped.WithLabelValues(event).Inc()
	}
}
