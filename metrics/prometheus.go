// Package metrics exports calendar unit cache activity to Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/programming086/calendar-unit-cache/types"
)

const (
	namespace = "calendar"
	subsystem = "cache"
)

var _ types.Metrics = (*Prometheus)(nil)

// Prometheus implements types.Metrics with counters and a gauge.
type Prometheus struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	records prometheus.Counter
	purges  prometheus.Counter
	evicted prometheus.Counter

	entries prometheus.Gauge
}

// New creates the collectors, labels them with component and registers them with reg.
func New(reg prometheus.Registerer, component string) (*Prometheus, error) {
	labels := prometheus.Labels{"component": component}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        name,
			ConstLabels: labels,
			Help:        help,
		})
	}

	m := &Prometheus{
		hits:    counter("hits_total", "Total number of lookups answered from the cache"),
		misses:  counter("misses_total", "Total number of lookups that found nothing"),
		records: counter("records_total", "Total number of record calls"),
		purges:  counter("purges_total", "Total number of global purges"),
		evicted: counter("evicted_total", "Total number of entries dropped by purges"),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "entries",
			ConstLabels: labels,
			Help:        "Aggregate number of entries across all unit caches",
		}),
	}

	for _, c := range []prometheus.Collector{m.hits, m.misses, m.records, m.purges, m.evicted, m.entries} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register calendar cache metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Prometheus) Hit()    { m.hits.Inc() }
func (m *Prometheus) Miss()   { m.misses.Inc() }
func (m *Prometheus) Record() { m.records.Inc() }

func (m *Prometheus) Purge(removed int) {
	m.purges.Inc()
	m.evicted.Add(float64(removed))
}

func (m *Prometheus) Size(entries int) {
	m.entries.Set(float64(entries))
}
