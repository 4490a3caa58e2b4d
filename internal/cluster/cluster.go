package cluster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamware/shardkv/internal/metrics"
	"github.com/dreamware/shardkv/internal/partition"
	"github.com/dreamware/shardkv/internal/placement"
	"github.com/dreamware/shardkv/internal/storage"
)

// ErrInvalidPartitionCount is returned by New and Resize for counts below 1.
var ErrInvalidPartitionCount = placement.ErrInvalidPartitionCount

// PartitionInfo is the per-partition summary returned by Info.
type PartitionInfo = partition.Info

// Cluster distributes opaque records over a fixed number of in-memory
// partitions by hashing each record's identifier.
//
// Concurrency model:
//   - mu guards the placement table and the partition slice
//   - Insert, Select, Update, Delete, Info take the read lock; each partition
//     store serializes its own writes
//   - Resize holds the write lock for its whole duration, so no operation
//     observes a half-built partition table
type Cluster struct {
	// partitions[i] is always the partition named table.Name(i).
	partitions []*partition.Partition
	table      *placement.Table

	codec   storage.Codec
	logger  *zap.Logger
	metrics metrics.ClusterMetrics
	newID   func() (uuid.UUID, error)

	mu sync.RWMutex
}

// New creates a cluster of n empty partitions named "node:1" through "node:n".
// It returns ErrInvalidPartitionCount (wrapped) if n < 1.
func New(n int, opts ...Option) (*Cluster, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	table, err := placement.NewTable(n)
	if err != nil {
		return nil, err
	}

	c := &Cluster{
		table:      table,
		partitions: newPartitions(table, o.codec),
		codec:      o.codec,
		logger:     o.logger.With(zap.String("component", "cluster")),
		metrics:    o.metrics,
		newID:      uuid.NewRandom,
	}
	c.reportPartitions()

	c.logger.Info("cluster created",
		zap.Int("partitions", n),
		zap.String("codec", o.codec.Name()),
	)
	return c, nil
}

func newPartitions(table *placement.Table, codec storage.Codec) []*partition.Partition {
	partitions := make([]*partition.Partition, table.Size())
	for i := range partitions {
		partitions[i] = partition.New(table.Name(i), codec)
	}
	return partitions
}

// locate returns the partition owning id. Callers must hold mu.
func (c *Cluster) locate(id string) *partition.Partition {
	return c.partitions[c.table.HashIndex(id)]
}

// Locate returns the name of the partition that owns id under the current
// partition count, whether or not the record exists.
func (c *Cluster) Locate(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table.Resolve(id)
}

// Insert stores value under a freshly generated UUID v4 and returns the id.
// The value is copied; later changes to the caller's slice are not seen.
func (c *Cluster) Insert(value []byte) (string, error) {
	defer c.metrics.OperationDuration(metrics.OpInsert).ObserveDuration()

	uid, err := c.newID()
	if err != nil {
		c.metrics.OperationCompleted(metrics.OpInsert, metrics.ResultError)
		return "", fmt.Errorf("generate record id: %w", err)
	}
	id := uid.String()

	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.locate(id)
	if err := p.Put(id, value); err != nil {
		c.metrics.OperationCompleted(metrics.OpInsert, metrics.ResultError)
		return "", fmt.Errorf("insert into %s: %w", p.Name, err)
	}

	c.metrics.OperationCompleted(metrics.OpInsert, metrics.ResultOK)
	c.metrics.PartitionRecords(p.Name, p.Len())
	c.logger.Debug("record inserted", zap.String("id", id), zap.String("partition", p.Name))
	return id, nil
}

// Select returns the value stored under id. The second result is false when
// no such record exists; an unknown id is not an error.
func (c *Cluster) Select(id string) ([]byte, bool) {
	defer c.metrics.OperationDuration(metrics.OpSelect).ObserveDuration()

	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.locate(id)
	value, err := p.Get(id)
	switch {
	case err == nil:
		c.metrics.OperationCompleted(metrics.OpSelect, metrics.ResultOK)
		return value, true
	case errors.Is(err, storage.ErrKeyNotFound):
		c.metrics.OperationCompleted(metrics.OpSelect, metrics.ResultMiss)
		return nil, false
	default:
		c.metrics.OperationCompleted(metrics.OpSelect, metrics.ResultError)
		c.logger.Error("record unreadable",
			zap.String("id", id),
			zap.String("partition", p.Name),
			zap.Error(err),
		)
		return nil, false
	}
}

// Update replaces the value stored under id and reports whether the record
// existed. Updating an unknown id is a no-op, not an error.
func (c *Cluster) Update(id string, value []byte) (bool, error) {
	defer c.metrics.OperationDuration(metrics.OpUpdate).ObserveDuration()

	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.locate(id)
	ok, err := p.Replace(id, value)
	if err != nil {
		c.metrics.OperationCompleted(metrics.OpUpdate, metrics.ResultError)
		return false, fmt.Errorf("update in %s: %w", p.Name, err)
	}
	if !ok {
		c.metrics.OperationCompleted(metrics.OpUpdate, metrics.ResultMiss)
		c.logger.Debug("update of unknown record ignored", zap.String("id", id))
		return false, nil
	}

	c.metrics.OperationCompleted(metrics.OpUpdate, metrics.ResultOK)
	c.logger.Debug("record updated", zap.String("id", id), zap.String("partition", p.Name))
	return true, nil
}

// Delete removes the record stored under id and reports whether it existed.
// Deleting an unknown id is a no-op.
func (c *Cluster) Delete(id string) bool {
	defer c.metrics.OperationDuration(metrics.OpDelete).ObserveDuration()

	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.locate(id)
	if !p.Delete(id) {
		c.metrics.OperationCompleted(metrics.OpDelete, metrics.ResultMiss)
		c.logger.Debug("delete of unknown record ignored", zap.String("id", id))
		return false
	}

	c.metrics.OperationCompleted(metrics.OpDelete, metrics.ResultOK)
	c.metrics.PartitionRecords(p.Name, p.Len())
	c.logger.Debug("record deleted", zap.String("id", id), zap.String("partition", p.Name))
	return true
}

// Info returns the name, record count and stored bytes of every partition.
//
// Entries come in placement order: partition names sorted as strings, so
// with twelve partitions the order is node:1, node:10, node:11, node:12,
// node:2, ... node:9, not numeric order. Entry i describes the partition
// that hash index i resolves to.
func (c *Cluster) Info() []PartitionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]PartitionInfo, len(c.partitions))
	for i, p := range c.partitions {
		infos[i] = p.Info()
	}
	return infos
}

// Stats returns operation and storage statistics keyed by partition name.
// Counters restart from zero after a resize.
func (c *Cluster) Stats() map[string]partition.PartitionStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(map[string]partition.PartitionStats, len(c.partitions))
	for _, p := range c.partitions {
		stats[p.Name] = p.GetStats()
	}
	return stats
}

// Len returns the number of live records.
func (c *Cluster) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, p := range c.partitions {
		total += p.Len()
	}
	return total
}

// Partitions returns the current partition count.
func (c *Cluster) Partitions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table.Size()
}

// Range calls fn for every record until fn returns false. Order is
// unspecified. fn must not call back into the cluster.
func (c *Cluster) Range(fn func(id string, value []byte) bool) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stop := false
	for _, p := range c.partitions {
		err := p.Range(func(id string, value []byte) bool {
			if !fn(id, value) {
				stop = true
			}
			return !stop
		})
		if err != nil {
			return fmt.Errorf("range %s: %w", p.Name, err)
		}
		if stop {
			return nil
		}
	}
	return nil
}

func (c *Cluster) reportPartitions() {
	c.metrics.PartitionsReplaced(len(c.partitions))
	for _, p := range c.partitions {
		c.metrics.PartitionRecords(p.Name, p.Len())
	}
}
