package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SyncMetrics are the Prometheus collectors for sync runs and the collection size.
type SyncMetrics struct {
	runs      *prometheus.CounterVec
	conflicts prometheus.Counter
	added     prometheus.Counter
	duration  prometheus.Histogram
	quotes    prometheus.Gauge
}

// NewSyncMetrics registers the collectors with reg.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	f := promauto.With(reg)

	return &SyncMetrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotesync",
			Name:      "sync_runs_total",
			Help:      "Sync runs by outcome.",
		}, []string{"status"}),
		conflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quotesync",
			Name:      "sync_conflicts_total",
			Help:      "Conflicts resolved in favor of the remote source.",
		}),
		added: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quotesync",
			Name:      "sync_added_total",
			Help:      "Remote quotes appended to the collection.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quotesync",
			Name:      "sync_duration_seconds",
			Help:      "Wall time of sync runs that reached the remote source.",
			Buckets:   prometheus.DefBuckets,
		}),
		quotes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "quotesync",
			Name:      "quotes",
			Help:      "Quotes currently in the collection.",
		}),
	}
}

// ObserveSync records one finished run.
func (m *SyncMetrics) ObserveSync(status string, added, conflicts int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.runs.WithLabelValues(status).Inc()
	m.added.Add(float64(added))
	m.conflicts.Add(float64(conflicts))

	if elapsed > 0 {
		m.duration.Observe(elapsed.Seconds())
	}
}

// SetQuoteCount updates the collection size gauge.
func (m *SyncMetrics) SetQuoteCount(n int) {
	if m == nil {
		return
	}

	m.quotes.Set(float64(n))
}
