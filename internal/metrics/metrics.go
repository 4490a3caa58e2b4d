// Package metrics defines the instrumentation surface of a shardkv cluster
// without tying the cluster to a backend. NewPrometheus provides the
// Prometheus implementation; Nop discards everything.
package metrics

// Operation names used as label values.
const (
	OpInsert = "insert"
	OpSelect = "select"
	OpUpdate = "update"
	OpDelete = "delete"
	OpResize = "resize"
)

// Operation results used as label values.
const (
	ResultOK    = "ok"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}

// ClusterMetrics is implemented by metric backends for the cluster.
// All methods are thread-safe.
type ClusterMetrics interface {
	// OperationDuration starts a timer for op.
	OperationDuration(op string) Timer
	// OperationCompleted counts one op with the given result.
	OperationCompleted(op, result string)

	// PartitionRecords reports the record count held by a partition.
	PartitionRecords(partition string, count int)
	// PartitionsReplaced drops every per-partition series and reports the
	// new partition count. Called at construction and after each resize.
	PartitionsReplaced(count int)

	// RecordsRelocated counts records whose partition changed during a resize.
	RecordsRelocated(count int)
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

type nopClusterMetrics struct{}

func (nopClusterMetrics) OperationDuration(string) Timer    { return nopTimer{} }
func (nopClusterMetrics) OperationCompleted(string, string) {}
func (nopClusterMetrics) PartitionRecords(string, int)      {}
func (nopClusterMetrics) PartitionsReplaced(int)            {}
func (nopClusterMetrics) RecordsRelocated(int)              {}

// Nop returns a ClusterMetrics that records nothing.
func Nop() ClusterMetrics { return nopClusterMetrics{} }
