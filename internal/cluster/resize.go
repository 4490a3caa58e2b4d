package cluster

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dreamware/shardkv/internal/metrics"
	"github.com/dreamware/shardkv/internal/partition"
	"github.com/dreamware/shardkv/internal/placement"
)

// Resize changes the partition count to n and moves every record to the
// partition that owns it under the new count.
//
// Process:
//  1. Validate n and build the new placement table
//  2. Take the write lock, blocking all other operations
//  3. Create n empty partitions
//  4. Re-resolve every record of every old partition and copy it over
//  5. Swap the new table and partitions in
//
// Placement is hash mod n, so almost every record changes partition. No
// record is lost or duplicated: ids are unique, and each id lands in exactly
// one new partition. If copying fails the old partitions stay in place and
// the cluster is unchanged.
func (c *Cluster) Resize(n int) error {
	defer c.metrics.OperationDuration(metrics.OpResize).ObserveDuration()
	start := time.Now()

	table, err := placement.NewTable(n)
	if err != nil {
		c.metrics.OperationCompleted(metrics.OpResize, metrics.ResultError)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.table.Size()
	fresh := newPartitions(table, c.codec)

	moved, relocated, err := redistribute(c.partitions, fresh, table)
	if err != nil {
		c.metrics.OperationCompleted(metrics.OpResize, metrics.ResultError)
		c.logger.Error("resize aborted",
			zap.Int("from", from),
			zap.Int("to", n),
			zap.Error(err),
		)
		return err
	}

	c.table = table
	c.partitions = fresh

	c.metrics.OperationCompleted(metrics.OpResize, metrics.ResultOK)
	c.metrics.RecordsRelocated(relocated)
	c.reportPartitions()

	c.logger.Info("cluster resized",
		zap.Int("from", from),
		zap.Int("to", n),
		zap.Int("records", moved),
		zap.Int("relocated", relocated),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// redistribute copies every record of old into the partition of dst that
// table resolves it to. It returns the number of records copied and how
// many of them ended up in a partition with a different name.
func redistribute(old, dst []*partition.Partition, table *placement.Table) (moved, relocated int, err error) {
	for _, src := range old {
		var putErr error
		rangeErr := src.Range(func(id string, value []byte) bool {
			target := dst[table.HashIndex(id)]
			if putErr = target.Put(id, value); putErr != nil {
				putErr = fmt.Errorf("move %s from %s to %s: %w", id, src.Name, target.Name, putErr)
				return false
			}
			moved++
			if target.Name != src.Name {
				relocated++
			}
			return true
		})
		if putErr != nil {
			return moved, relocated, putErr
		}
		if rangeErr != nil {
			return moved, relocated, fmt.Errorf("drain %s: %w", src.Name, rangeErr)
		}
	}
	return moved, relocated, nil
}
