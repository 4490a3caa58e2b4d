// Package placement maps record identifiers to partitions of a shardkv cluster.
// See doc.go for complete package documentation.
package placement

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/dreamware/shardkv/internal/partition"
)

// ErrInvalidPartitionCount is returned when a table is requested with fewer
// than one partition. Placement is hash mod N, so N must be at least 1.
var ErrInvalidPartitionCount = errors.New("partition count must be at least 1")

// Table is the authoritative placement for one partition count. It holds the
// partition names in lexicographic order and resolves every key to one of
// them by position.
//
// The table is immutable once built. A resize builds a new table rather than
// mutating the current one, so a Table can be shared freely between
// goroutines without locking.
//
// Architecture:
//
//	┌─────────────────────────────────────────────┐
//	│                   Table                     │
//	├─────────────────────────────────────────────┤
//	│  n:     partition count                     │
//	│  names: ["node:1","node:10","node:2",...]   │
//	├─────────────────────────────────────────────┤
//	│  Key → SHA-256 → big uint mod n → names[i]  │
//	│  "user:123" → 0x8f..c1 → 11 → "node:9"      │
//	└─────────────────────────────────────────────┘
//
// Invariant: names[i] is the name of the partition stored at index i by the
// cluster. Names sort as strings while indices are numeric, so the cluster
// must build its partition slice from Names() and never from 1..n directly.
type Table struct {
	// names are the partition names sorted lexicographically.
	names []string

	// modulus is n as a big.Int, kept to avoid reallocating per lookup.
	modulus *big.Int

	// n is the number of partitions, always >= 1.
	n int
}

// NewTable builds the placement table for n partitions named "node:1"
// through "node:n".
//
// Parameters:
//   - n: Number of partitions (must be >= 1)
//
// Returns:
//   - Table ready for lookups
//   - ErrInvalidPartitionCount (wrapped) if n < 1
//
// Example:
//
//	table, err := placement.NewTable(12)
//	if err != nil {
//	    return err
//	}
//	name := table.Resolve("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
func NewTable(n int) (*Table, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPartitionCount, n)
	}

	names := make([]string, n)
	for i := range names {
		names[i] = partition.Name(i + 1)
	}
	slices.Sort(names)

	return &Table{
		names:   names,
		modulus: big.NewInt(int64(n)),
		n:       n,
	}, nil
}

// HashIndex returns the position in [0, n) that key maps to.
//
// Hashing algorithm:
//   - SHA-256 over the raw bytes of key
//   - The full 32-byte digest is read as a big-endian unsigned integer
//   - The integer is reduced modulo n
//
// The result depends only on key and n: there is no seed and no process
// state, so it is stable across calls, processes and machines. Changing n
// changes the index of nearly every key; this is not a consistent-hash ring.
//
// Thread Safety:
// Pure computation over immutable state, safe for concurrent use.
//
// Performance:
// O(k) where k is the key length.
func (t *Table) HashIndex(key string) int {
	sum := sha256.Sum256([]byte(key))
	digest := new(big.Int).SetBytes(sum[:])
	return int(digest.Mod(digest, t.modulus).Int64())
}

// Resolve returns the name of the partition that owns key.
//
// Routing process:
//   - Key → HashIndex → position → sorted name
//   - Example: "user:123" with 12 partitions → 11 → "node:9"
func (t *Table) Resolve(key string) string {
	return t.names[t.HashIndex(key)]
}

// Name returns the partition name at position i.
// It panics if i is outside [0, Size()).
func (t *Table) Name(i int) string {
	return t.names[i]
}

// Names returns a copy of the partition names in placement order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Size returns the number of partitions.
func (t *Table) Size() int {
	return t.n
}
