// Package metrics exposes Prometheus collectors for the sync engine and the HTTP server.
//
// Client metrics (namespace fieldkeeper_sync):
//   - actions_completed_total, actions_retried_total, actions_failed_total by kind
//   - drain_duration_seconds histogram
//   - pending_actions and data_version gauges
//
// Server metrics (namespace fieldkeeper_http):
//   - requests_total by method, route and status
//   - request_duration_seconds by route
//   - idempotent_replays_total by route
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/fieldkeeper/internal/client/sync"
	"github.com/iudanet/fieldkeeper/internal/models"
)

// SyncCollector records drain outcomes. It implements sync.Recorder.
type SyncCollector struct {
	completed     *prometheus.CounterVec
	retried       *prometheus.CounterVec
	failed        *prometheus.CounterVec
	drainDuration prometheus.Histogram
	pending       prometheus.Gauge
	dataVersion   prometheus.Gauge
}

var _ sync.Recorder = (*SyncCollector)(nil)

// NewSyncCollector creates the collector and registers it with reg.
func NewSyncCollector(reg prometheus.Registerer) *SyncCollector {
	c := &SyncCollector{
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldkeeper",
			Subsystem: "sync",
			Name:      "actions_completed_total",
			Help:      "Actions confirmed by their effect handler",
		}, []string{"kind"}),
		retried: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldkeeper",
			Subsystem: "sync",
			Name:      "actions_retried_total",
			Help:      "Failed attempts that left the action pending",
		}, []string{"kind"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldkeeper",
			Subsystem: "sync",
			Name:      "actions_failed_total",
			Help:      "Actions that exhausted their retry budget",
		}, []string{"kind"}),
		drainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fieldkeeper",
			Subsystem: "sync",
			Name:      "drain_duration_seconds",
			Help:      "Duration of drain passes that ran",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fieldkeeper",
			Subsystem: "sync",
			Name:      "pending_actions",
			Help:      "Pending actions left after the last drain",
		}),
		dataVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fieldkeeper",
			Subsystem: "sync",
			Name:      "data_version",
			Help:      "Local data version counter",
		}),
	}

	// счетчики по всем видам действий видны с нуля
	for _, kind := range models.Kinds() {
		c.completed.WithLabelValues(string(kind))
		c.retried.WithLabelValues(string(kind))
		c.failed.WithLabelValues(string(kind))
	}

	reg.MustRegister(c.completed, c.retried, c.failed, c.drainDuration, c.pending, c.dataVersion)
	return c
}

// ActionCompleted records a confirmed action.
func (c *SyncCollector) ActionCompleted(kind models.Kind) {
	c.completed.WithLabelValues(string(kind)).Inc()
}

// ActionRetried records a failed attempt that will be retried.
func (c *SyncCollector) ActionRetried(kind models.Kind) {
	c.retried.WithLabelValues(string(kind)).Inc()
}

// ActionFailed records an action that ran out of attempts.
func (c *SyncCollector) ActionFailed(kind models.Kind) {
	c.failed.WithLabelValues(string(kind)).Inc()
}

// DrainFinished records the duration of a pass and the pending backlog.
func (c *SyncCollector) DrainFinished(duration time.Duration, pending int) {
	c.drainDuration.Observe(duration.Seconds())
	c.pending.Set(float64(pending))
}

// DataVersion records the current data version.
func (c *SyncCollector) DataVersion(version int64) {
	c.dataVersion.Set(float64(version))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
