// Package metrics records store activity in a Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	Registry *prometheus.Registry

	actions      *prometheus.CounterVec
	saveDuration prometheus.Histogram
	tasks        prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		actions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todos_actions_total",
				Help: "Actions applied to the task collection",
			},
			[]string{"kind"},
		),
		saveDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "todos_save_duration_seconds",
				Help:    "Time spent writing the task collection",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
		tasks: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "todos_tasks",
				Help: "Tasks in the collection after the last change",
			},
		),
	}
}

// ObserveDispatch records one applied action.
func (m *Metrics) ObserveDispatch(kind string, save time.Duration, tasks int) {
	m.actions.WithLabelValues(kind).Inc()
	m.saveDuration.Observe(save.Seconds())
	m.tasks.Set(float64(tasks))
}

// ObserveLoad records the collection size at startup.
func (m *Metrics) ObserveLoad(tasks int) {
	m.tasks.Set(float64(tasks))
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
