// Package metrics records conversion counters and writes them in the
// Prometheus text format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wsjtx_adif"

// Run holds the counters of one conversion run.
type Run struct {
	registry    *prometheus.Registry
	lines       prometheus.Counter
	records     prometheus.Counter
	skipped     prometheus.Counter
	unconfirmed prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRun registers a fresh set of counters on a private registry.
func NewRun() *Run {
	r := &Run{registry: prometheus.NewRegistry()}
	r.lines = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lines_total",
		Help:      "Input lines read",
	})
	r.records = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "ADIF records written",
	})
	r.skipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skipped_lines_total",
		Help:      "Lines skipped because of a malformed payload",
	})
	r.unconfirmed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unconfirmed",
		Help:      "Stations selected but never confirmed at end of input",
	})
	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed run",
	})
	r.registry.MustRegister(r.lines, r.records, r.skipped, r.unconfirmed, r.lastRun)
	return r
}

// Observe copies the totals of a finished run into the counters.
func (r *Run) Observe(lines, records, skipped, unconfirmed int, finished time.Time) {
	r.lines.Add(float64(lines))
	r.records.Add(float64(records))
	r.skipped.Add(float64(skipped))
	r.unconfirmed.Set(float64(unconfirmed))
	r.lastRun.Set(float64(finished.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Run) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes the metrics to path atomically.
func (r *Run) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics file %s: %w", path, err)
	}
	return nil
}
