// Package telemetry exposes Prometheus metrics for the query agent.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the agent's Prometheus collectors.
type Metrics struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the agent metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aerowise_queries_total",
			Help: "Total number of questions answered, by classified intent.",
		}, []string{"intent"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aerowise_query_duration_seconds",
			Help:    "Question handling duration in seconds, by classified intent.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"intent"}),
	}

	for _, collector := range []prometheus.Collector{m.queriesTotal, m.queryDuration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveQuery records one answered question.
func (m *Metrics) ObserveQuery(intent string, duration time.Duration) {
	m.queriesTotal.WithLabelValues(intent).Inc()
	m.queryDuration.WithLabelValues(intent).Observe(duration.Seconds())
}
