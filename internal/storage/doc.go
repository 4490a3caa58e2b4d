// Package storage provides the record maps that back each partition of a
// shardkv cluster, behind a small interface so the map implementation and
// the at-rest value encoding can vary independently of placement.
//
// # Overview
//
// A partition owns exactly one Store. The store maps record identifiers to
// opaque record values. It never inspects a value: the cluster hands it a
// byte slice and expects the same bytes back.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│         Partition ("node:3")        │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│          Store interface            │
//	│  Get Put Replace Delete List Range  │
//	└─────────────────────────────────────┘
//	                 │
//	                 ▼
//	┌─────────────────────────────────────┐
//	│            MemoryStore              │
//	│  map[string][]byte + RWMutex        │
//	│  Codec: RawCodec | SnappyCodec      │
//	└─────────────────────────────────────┘
//
// # Core Interfaces
//
// Store: record map operations
//   - Get(key) - Retrieve a value, ErrKeyNotFound when absent
//   - Put(key, value) - Insert or overwrite
//   - Replace(key, value) - Overwrite only when present
//   - Delete(key) - Remove, reporting whether the key existed
//   - List() / Range(fn) - Enumerate in no particular order
//   - Stats() - Key count and bytes held at rest
//
// Codec: at-rest value encoding
//   - RawCodec keeps values unchanged
//   - SnappyCodec compresses values with github.com/golang/snappy
//
// # Concurrency and Thread Safety
//
// MemoryStore guards its map with a sync.RWMutex. Reads take the shared
// lock, writes the exclusive lock. Values are copied on the way in and on
// the way out, so a caller can never alias a stored record.
//
// Range holds the read lock while it runs; the callback must not call back
// into the same store.
//
// # Performance Characteristics
//
// Get, Put, Replace, Delete: O(1) average plus codec cost
// List, Range, Stats: O(n) for n keys
//
// # Usage Example
//
//	store := storage.NewMemoryStoreWithCodec(storage.SnappyCodec{})
//	_ = store.Put("6f1c...", []byte(`{"name":"lala"}`))
//
//	value, err := store.Get("6f1c...")
//	if errors.Is(err, storage.ErrKeyNotFound) {
//	    // not stored here
//	}
package storage
