package partition

import (
	"strconv"
	"sync/atomic"

	"github.com/dreamware/shardkv/internal/storage"
)

// NamePrefix is prepended to the 1-based index of every partition name
const NamePrefix = "node:"

// Name returns the name of the partition with the given 1-based index
func Name(index int) string {
	return NamePrefix + strconv.Itoa(index)
}

// Partition is a named bucket holding a subset of the cluster's records
// Which records it holds is decided by the placement table, not the partition
type Partition struct {
	Name  string          // Stable name, "node:<i>"
	Store storage.Store   // Record map for this partition
	Stats *PartitionStats // Operation statistics
}

// PartitionStats tracks operational statistics for a partition
type PartitionStats struct {
	Ops     OperationStats     // Operation counts
	Storage storage.StoreStats // Storage statistics
}

// OperationStats tracks operation counts
type OperationStats struct {
	Gets    uint64 // Number of get operations
	Puts    uint64 // Number of put and replace operations
	Deletes uint64 // Number of delete operations
}

// Info is a point-in-time summary of a partition
type Info struct {
	Name    string // Partition name
	Records int    // Number of records held
	Bytes   int    // Bytes held at rest
}

// New creates an empty partition with in-memory storage
// A nil codec stores values unchanged
func New(name string, codec storage.Codec) *Partition {
	return &Partition{
		Name:  name,
		Store: storage.NewMemoryStoreWithCodec(codec),
		Stats: &PartitionStats{},
	}
}

// Get retrieves a record from the partition
// Increments get counter for statistics
func (p *Partition) Get(id string) ([]byte, error) {
	atomic.AddUint64(&p.Stats.Ops.Gets, 1)
	return p.Store.Get(id)
}

// Put stores a record in the partition
// Increments put counter for statistics
func (p *Partition) Put(id string, value []byte) error {
	atomic.AddUint64(&p.Stats.Ops.Puts, 1)
	return p.Store.Put(id, value)
}

// Replace overwrites a record only if the partition already holds it
// Only a replace that found the record counts as a put
func (p *Partition) Replace(id string, value []byte) (bool, error) {
	ok, err := p.Store.Replace(id, value)
	if ok {
		atomic.AddUint64(&p.Stats.Ops.Puts, 1)
	}
	return ok, err
}

// Delete removes a record from the partition
// Increments delete counter for statistics
func (p *Partition) Delete(id string) bool {
	atomic.AddUint64(&p.Stats.Ops.Deletes, 1)
	return p.Store.Delete(id)
}

// ListKeys returns all record ids in the partition
func (p *Partition) ListKeys() []string {
	return p.Store.List()
}

// Range visits every record in the partition
func (p *Partition) Range(fn func(id string, value []byte) bool) error {
	return p.Store.Range(fn)
}

// Len returns the number of records held
func (p *Partition) Len() int {
	return p.Store.Len()
}

// GetStats returns current partition statistics
func (p *Partition) GetStats() PartitionStats {
	return PartitionStats{
		Ops: OperationStats{
			Gets:    atomic.LoadUint64(&p.Stats.Ops.Gets),
			Puts:    atomic.LoadUint64(&p.Stats.Ops.Puts),
			Deletes: atomic.LoadUint64(&p.Stats.Ops.Deletes),
		},
		Storage: p.Store.Stats(),
	}
}

// Info returns metadata about the partition
func (p *Partition) Info() Info {
	storageStats := p.Store.Stats()

	return Info{
		Name:    p.Name,
		Records: storageStats.Keys,
		Bytes:   storageStats.Bytes,
	}
}
