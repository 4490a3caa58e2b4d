package storage

import (
	"errors"
	"sync"
)

// ErrKeyNotFound is returned when a key doesn't exist in the store
var ErrKeyNotFound = errors.New("key not found")

// Store defines the interface for a partition's record map
// All implementations must be thread-safe for concurrent access
type Store interface {
	// Get retrieves a value by key
	// Returns ErrKeyNotFound if the key doesn't exist
	Get(key string) ([]byte, error)

	// Put stores a value with the given key
	// Overwrites any existing value for the key
	Put(key string, value []byte) error

	// Replace overwrites the value of an existing key
	// Reports false and stores nothing if the key doesn't exist
	Replace(key string, value []byte) (bool, error)

	// Delete removes a key-value pair
	// Reports whether the key existed
	Delete(key string) bool

	// List returns all keys in the store
	// Order is not guaranteed
	List() []string

	// Range calls fn for every key-value pair until fn returns false
	// Order is not guaranteed
	Range(fn func(key string, value []byte) bool) error

	// Len returns the number of keys
	Len() int

	// Stats returns storage statistics
	Stats() StoreStats
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Keys  int // Number of keys
	Bytes int // Total size of all stored values in bytes
}

// MemoryStore implements Store interface with in-memory storage
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	codec Codec             // Transforms values at rest
	data  map[string][]byte // Key-value storage, values in codec form
	mu    sync.RWMutex      // Protects concurrent access
}

// NewMemoryStore creates a new in-memory store that keeps values as given
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithCodec(RawCodec{})
}

// NewMemoryStoreWithCodec creates a new in-memory store that passes
// every value through codec on the way in and out
func NewMemoryStoreWithCodec(codec Codec) *MemoryStore {
	if codec == nil {
		codec = RawCodec{}
	}
	return &MemoryStore{
		codec: codec,
		data:  make(map[string][]byte),
	}
}

// Get retrieves a value by key
// Returns a copy of the value to prevent external modification
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return nil, ErrKeyNotFound
	}
	return m.codec.Decode(value)
}

// Put stores a value with the given key
// Makes a copy of the value to prevent external modification
func (m *MemoryStore) Put(key string, value []byte) error {
	stored, err := m.codec.Encode(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = stored
	return nil
}

// Replace overwrites the value for key only if key is already present
func (m *MemoryStore) Replace(key string, value []byte) (bool, error) {
	stored, err := m.codec.Encode(value)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return false, nil
	}
	m.data[key] = stored
	return true, nil
}

// Delete removes a key-value pair
// Deleting a missing key is a no-op (idempotent)
func (m *MemoryStore) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return false
	}
	delete(m.data, key)
	return true
}

// List returns all keys in the store
// Returns a copy of the keys to prevent external modification
func (m *MemoryStore) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	return keys
}

// Range visits every pair under the read lock
// fn must not call back into the store
func (m *MemoryStore) Range(fn func(key string, value []byte) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for key, stored := range m.data {
		value, err := m.codec.Decode(stored)
		if err != nil {
			return err
		}
		if !fn(key, value) {
			return nil
		}
	}
	return nil
}

// Len returns the number of keys without walking the values
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Stats returns storage statistics
// Bytes counts values as held at rest, so it reflects compression
func (m *MemoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totalBytes := 0
	for _, value := range m.data {
		totalBytes += len(value)
	}

	return StoreStats{
		Keys:  len(m.data),
		Bytes: totalBytes,
	}
}
