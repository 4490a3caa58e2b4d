// Package placement decides which partition of a shardkv cluster owns a
// record, making the mapping deterministic across calls, processes and
// machines.
//
// # Overview
//
// Placement is the only routing decision in the system. Every operation on a
// record first asks the placement Table for the owning partition, then acts
// on that partition alone. Because insert, select, update and delete all use
// the same Table, a record is always sought in the single partition it could
// possibly be in.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│               TABLE                 │
//	├─────────────────────────────────────┤
//	│  ┌──────────────────────────────┐   │
//	│  │   Hash                       │   │
//	│  │   - SHA-256 of key bytes     │   │
//	│  │   - 256-bit unsigned integer │   │
//	│  │   - mod partition count      │   │
//	│  └──────────────────────────────┘   │
//	│  ┌──────────────────────────────┐   │
//	│  │   Sorted names               │   │
//	│  │   - "node:1","node:10",...   │   │
//	│  │   - index → name             │   │
//	│  └──────────────────────────────┘   │
//	└─────────────────────────────────────┘
//
// # Name Ordering
//
// Names are sorted as strings, so with twelve partitions the order is
//
//	0:node:1  1:node:10  2:node:11  3:node:12  4:node:2 ... 11:node:9
//
// A hash index of 4 therefore resolves to "node:2", not "node:5". The
// cluster builds its partition slice from Names() so that index i always
// holds the partition named Name(i).
//
// # Resizing
//
// A Table is fixed to one partition count. Resizing the cluster builds a new
// Table and re-resolves every record against it. Placement is modulo based,
// not a consistent-hash ring: going from N to M partitions moves roughly
// (1 - 1/max(N,M)) of all records, and no attempt is made to reduce that.
//
// # Failure Handling
//
// The only failure is a partition count below one, reported as
// ErrInvalidPartitionCount before anything is built. Every string is a valid
// key; keys are hashed as raw bytes.
//
// # Performance Characteristics
//
// NewTable: O(n log n) for the name sort
// HashIndex / Resolve: O(k) in key length, no allocation beyond the big.Int
package placement
