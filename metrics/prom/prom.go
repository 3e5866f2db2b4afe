// Package prom exports kdgo operation metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, _ := prom.New(reg, "kdgo")
//	s, _ := kdgo.New(2, 8, kdgo.WithMetricsCollector(c))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/kdgo"
)

// Compile time check to ensure Collector satisfies the kdgo.MetricsCollector interface.
var _ kdgo.MetricsCollector = (*Collector)(nil)

// Collector implements kdgo.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency     *prometheus.HistogramVec
	ops           *prometheus.CounterVec
	leavesChecked prometheus.Histogram
	batchQueries  prometheus.Counter
}

// New creates a Collector and registers its metrics with reg.
// namespace prefixes every metric name (e.g. "kdgo_operation_latency_seconds").
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of tree operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total tree operations by type and status",
		}, []string{"op", "status"}),
		leavesChecked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_leaves_checked",
			Help:      "Number of leaves visited per k-NN search",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		batchQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_search_queries_total",
			Help:      "Total queries submitted through batch searches",
		}),
	}

	for _, col := range []prometheus.Collector{c.opLatency, c.ops, c.leavesChecked, c.batchQueries} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *Collector) observe(op string, duration time.Duration, err error) {
	st := status(err)
	c.opLatency.WithLabelValues(op, st).Observe(duration.Seconds())
	c.ops.WithLabelValues(op, st).Inc()
}

// RecordInsert implements kdgo.MetricsCollector.
func (c *Collector) RecordInsert(duration time.Duration, err error) {
	c.observe("insert", duration, err)
}

// RecordDelete implements kdgo.MetricsCollector.
func (c *Collector) RecordDelete(duration time.Duration, err error) {
	c.observe("delete", duration, err)
}

// RecordSearch implements kdgo.MetricsCollector.
func (c *Collector) RecordSearch(k, leavesChecked int, duration time.Duration, err error) {
	c.observe("search", duration, err)
	if err == nil {
		c.leavesChecked.Observe(float64(leavesChecked))
	}
}

// RecordBatchSearch implements kdgo.MetricsCollector.
func (c *Collector) RecordBatchSearch(count int, duration time.Duration, err error) {
	c.observe("batch_search", duration, err)
	c.batchQueries.Add(float64(count))
}
