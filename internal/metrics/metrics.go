// Package metrics collects prometheus counters for the planner: mutation
// outcomes, conflict rejections and remote fetch behavior.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	mutationsApplied  *prometheus.CounterVec
	conflictsRejected *prometheus.CounterVec
	remoteFailures    *prometheus.CounterVec
	fetchLatency      prometheus.Histogram
	itemsFetched      prometheus.Counter
}

// NewCollector registers the planner metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		mutationsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_mutations_applied_total",
			Help: "Mutations applied to the item collection, by action.",
		}, []string{"action"}),
		conflictsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_conflicts_rejected_total",
			Help: "Mutations rejected by the time-conflict gate, by action.",
		}, []string{"action"}),
		remoteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_remote_failures_total",
			Help: "Remote store operations that failed, by operation.",
		}, []string{"operation"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_fetch_latency_seconds",
			Help:    "Latency of full item collection fetches.",
			Buckets: prometheus.DefBuckets,
		}),
		itemsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_items_fetched_total",
			Help: "Items received from the remote store.",
		}),
	}

	reg.MustRegister(
		c.mutationsApplied,
		c.conflictsRejected,
		c.remoteFailures,
		c.fetchLatency,
		c.itemsFetched,
	)

	return c
}

func (c *Collector) RecordMutationApplied(action string) {
	c.mutationsApplied.WithLabelValues(action).Inc()
}

func (c *Collector) RecordConflictRejected(action string) {
	c.conflictsRejected.WithLabelValues(action).Inc()
}

func (c *Collector) RecordRemoteFailure(operation string) {
	c.remoteFailures.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordFetchLatency(d time.Duration) {
	c.fetchLatency.Observe(d.Seconds())
}

func (c *Collector) RecordItemsFetched(count int) {
	c.itemsFetched.Add(float64(count))
}

// Handler serves the registry for prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
