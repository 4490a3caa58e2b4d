// Package cluster implements the shardkv placement cluster: a single-process
// engine that spreads opaque records over N in-memory partitions by hashing
// each record's identifier, and that can change N by redistributing every
// record.
//
// # Overview
//
// The cluster owns a placement table and one partition per table position.
// Every record operation resolves the record id to exactly one partition and
// touches only that partition. Resize is the only operation that changes the
// set of partitions.
//
// # Architecture
//
//	             ┌────────────────────────┐
//	             │        Cluster         │
//	             │  table   (placement)   │
//	             │  partitions[0..N-1]    │
//	             └───────────┬────────────┘
//	                         │ HashIndex(id)
//	      ┌──────────────────┼──────────────────┐
//	      │                  │                  │
//	┌─────▼─────┐      ┌─────▼─────┐      ┌─────▼─────┐
//	│  node:1   │      │  node:10  │ ...  │  node:9   │
//	│ id → blob │      │ id → blob │      │ id → blob │
//	└───────────┘      └───────────┘      └───────────┘
//
// Partition i is always the partition named by the i-th lexicographically
// sorted name, matching the placement table.
//
// # Operations
//
//	New(n)            n >= 1 empty partitions "node:1".."node:n"
//	Insert(v)         generates a UUID v4 id, stores v, returns the id
//	Select(id)        value and true, or nil and false
//	Update(id, v)     replaces an existing value; unknown id is a no-op
//	Delete(id)        removes a record; unknown id is a no-op
//	Resize(n)         rebuilds n partitions and relocates every record
//	Info()            (name, record count, bytes) per partition
//
// Typed callers can use InsertJSON, SelectJSON and UpdateJSON, which marshal
// values as JSON before they reach the cluster. The cluster itself never
// inspects a value.
//
// # Error Handling
//
// A partition count below one is rejected with ErrInvalidPartitionCount
// before anything changes. Unknown ids are not errors. Every operation
// either fully applies or leaves the cluster unchanged.
//
// # Concurrency Model
//
// All methods are safe for concurrent use. Record operations share a read
// lock on the partition table and rely on each partition's own lock for
// their writes. Resize takes the write lock for its full duration, so record
// operations block until the new table is in place and never see a partially
// populated set of partitions.
//
// # Observability
//
// Pass WithLogger to receive zap logs: construction and resize at Info
// level, record operations at Debug level. Pass WithMetrics with
// metrics.NewPrometheus to export operation counts, latencies, records per
// partition and records relocated by resizes.
//
// # Usage Example
//
//	c, err := cluster.New(8, cluster.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	id, err := c.Insert([]byte(`{"name":"lala"}`))
//	if err != nil {
//	    return err
//	}
//
//	if v, ok := c.Select(id); ok {
//	    fmt.Printf("%s in %s\n", v, c.Locate(id))
//	}
//
//	if err := c.Resize(12); err != nil {
//	    return err
//	}
package cluster
