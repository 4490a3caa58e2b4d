// Package partition implements the storage unit of a shardkv cluster: a
// named, thread-safe bucket holding the records that the placement table
// maps to it.
//
// # Overview
//
// A cluster of N partitions names them "node:1" through "node:N". The name
// is the partition's only identity. A partition does not know how many
// siblings it has or which keys belong to it; the cluster resolves a record
// id to a partition and then calls into it.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│          PARTITION "node:7"         │
//	├─────────────────────────────────────┤
//	│  ┌──────────────────────────────┐   │
//	│  │   storage.Store              │   │
//	│  │   - id -> opaque value       │   │
//	│  │   - RWMutex protection       │   │
//	│  └──────────────────────────────┘   │
//	│  ┌──────────────────────────────┐   │
//	│  │   Statistics                 │   │
//	│  │   - gets / puts / deletes    │   │
//	│  │   - records / bytes          │   │
//	│  └──────────────────────────────┘   │
//	└─────────────────────────────────────┘
//
// # Operations
//
// Put: stores or overwrites a record. Used by insert and by resize.
//
// Replace: overwrites a record only when present. Used by update, which is
// a no-op for unknown ids.
//
// Get: returns the record or storage.ErrKeyNotFound.
//
// Delete: removes a record and reports whether it existed.
//
// Range / ListKeys: enumerate records in no particular order. Resize drains
// old partitions through Range.
//
// # Statistics
//
// Operation counters are updated with sync/atomic and can be read at any
// time through GetStats. Partitions are recreated on resize, so counters
// restart from zero whenever the partition count changes.
//
// # Lifecycle
//
// Partitions are created empty at cluster construction and at every resize.
// They are never renamed or reused across a resize.
package partition
