// Package metrics exposes Prometheus counters for the sync pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records sync cycle outcomes. Handed to the ingestion
// coordinator; a nil *Collector is a no-op so tests can skip it.
type Collector struct {
	cycles       *prometheus.CounterVec
	songsStored  prometheus.Counter
	songsSkipped prometheus.Counter
	fetchErrors  prometheus.Counter
	fetchLatency prometheus.Histogram
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wtmd_sync_cycles_total",
			Help: "Completed sync cycles by outcome.",
		}, []string{"outcome"}),
		songsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtmd_songs_stored_total",
			Help: "Songs newly inserted into storage.",
		}),
		songsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtmd_songs_skipped_total",
			Help: "Candidates discarded by validation or per-record storage errors.",
		}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtmd_fetch_errors_total",
			Help: "Playlist page fetch failures.",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wtmd_fetch_latency_seconds",
			Help:    "Playlist page fetch latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.cycles, c.songsStored, c.songsSkipped, c.fetchErrors, c.fetchLatency)
	return c
}

func (c *Collector) RecordCycle(outcome string, stored, skipped int) {
	if c == nil {
		return
	}
	c.cycles.WithLabelValues(outcome).Inc()
	c.songsStored.Add(float64(stored))
	c.songsSkipped.Add(float64(skipped))
}

func (c *Collector) RecordFetchError() {
	if c == nil {
		return
	}
	c.fetchErrors.Inc()
}

func (c *Collector) RecordFetchLatency(d time.Duration) {
	if c == nil {
		return
	}
	c.fetchLatency.Observe(d.Seconds())
}
