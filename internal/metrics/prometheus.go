package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Operations are in-memory, so buckets start in the microsecond range.
var defaultBuckets = []float64{
	.000005, .00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .01, .1, 1,
}

// prometheusMetrics implements ClusterMetrics using Prometheus.
type prometheusMetrics struct {
	operationDuration *prometheus.HistogramVec
	operationsTotal   *prometheus.CounterVec
	partitionRecords  *prometheus.GaugeVec
	partitions        prometheus.Gauge
	relocatedTotal    prometheus.Counter
}

// NewPrometheus creates the Prometheus implementation of ClusterMetrics and
// registers its collectors with reg. It panics if registration fails, as
// prometheus.MustRegister does.
func NewPrometheus(reg prometheus.Registerer) ClusterMetrics {
	m := &prometheusMetrics{
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shardkv_cluster_operation_duration_seconds",
			Help:    "Cluster operation latency in seconds",
			Buckets: defaultBuckets,
		}, []string{"operation"}),

		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shardkv_cluster_operations_total",
			Help: "Total number of cluster operations by result",
		}, []string{"operation", "result"}),

		partitionRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shardkv_partition_records",
			Help: "Number of records held by partition",
		}, []string{"partition"}),

		partitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shardkv_cluster_partitions",
			Help: "Current partition count",
		}),

		relocatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shardkv_cluster_records_relocated_total",
			Help: "Total number of records that changed partition during resizes",
		}),
	}

	reg.MustRegister(
		m.operationDuration,
		m.operationsTotal,
		m.partitionRecords,
		m.partitions,
		m.relocatedTotal,
	)

	return m
}

func (m *prometheusMetrics) OperationDuration(op string) Timer {
	return &timer{h: m.operationDuration.WithLabelValues(op), start: time.Now()}
}

func (m *prometheusMetrics) OperationCompleted(op, result string) {
	m.operationsTotal.WithLabelValues(op, result).Inc()
}

func (m *prometheusMetrics) PartitionRecords(partition string, count int) {
	m.partitionRecords.WithLabelValues(partition).Set(float64(count))
}

func (m *prometheusMetrics) PartitionsReplaced(count int) {
	m.partitionRecords.Reset()
	m.partitions.Set(float64(count))
}

func (m *prometheusMetrics) RecordsRelocated(count int) {
	m.relocatedTotal.Add(float64(count))
}
