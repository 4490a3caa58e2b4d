package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeCodecs lists every codec a partition can be built with
var storeCodecs = []Codec{RawCodec{}, SnappyCodec{}}

// forEachCodec runs fn against a fresh store per codec
func forEachCodec(t *testing.T, fn func(t *testing.T, store *MemoryStore)) {
	t.Helper()
	for _, codec := range storeCodecs {
		t.Run(codec.Name(), func(t *testing.T) {
			fn(t, NewMemoryStoreWithCodec(codec))
		})
	}
}

func TestMemoryStoreRecords(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, store *MemoryStore)
	}{
		{
			name: "new store is empty",
			run: func(t *testing.T, store *MemoryStore) {
				assert.Empty(t, store.List())
				assert.Zero(t, store.Len())
				assert.Equal(t, StoreStats{}, store.Stats())

				_, err := store.Get(uuid.NewString())
				assert.ErrorIs(t, err, ErrKeyNotFound)
			},
		},
		{
			name: "put then get returns the record",
			run: func(t *testing.T, store *MemoryStore) {
				id := uuid.NewString()
				record := []byte(`{"name":"lala"}`)
				require.NoError(t, store.Put(id, record))

				got, err := store.Get(id)
				require.NoError(t, err)
				assert.Equal(t, record, got)
				assert.Equal(t, 1, store.Len())
			},
		},
		{
			name: "put overwrites",
			run: func(t *testing.T, store *MemoryStore) {
				id := uuid.NewString()
				require.NoError(t, store.Put(id, []byte(`{"name":"lala"}`)))
				require.NoError(t, store.Put(id, []byte(`{"name":"moved"}`)))

				got, err := store.Get(id)
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"name":"moved"}`), got)
				assert.Equal(t, 1, store.Len())
			},
		},
		{
			name: "replace of unknown id stores nothing",
			run: func(t *testing.T, store *MemoryStore) {
				id := uuid.NewString()
				ok, err := store.Replace(id, []byte(`{"name":"ghost"}`))
				require.NoError(t, err)
				assert.False(t, ok)

				_, err = store.Get(id)
				assert.ErrorIs(t, err, ErrKeyNotFound)
				assert.Zero(t, store.Len())
			},
		},
		{
			name: "replace of known id overwrites",
			run: func(t *testing.T, store *MemoryStore) {
				id := uuid.NewString()
				require.NoError(t, store.Put(id, []byte(`{"name":"lala"}`)))

				ok, err := store.Replace(id, []byte(`{"name":"updated_lala"}`))
				require.NoError(t, err)
				assert.True(t, ok)

				got, err := store.Get(id)
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"name":"updated_lala"}`), got)
			},
		},
		{
			name: "delete reports whether the id existed",
			run: func(t *testing.T, store *MemoryStore) {
				keep, drop := uuid.NewString(), uuid.NewString()
				require.NoError(t, store.Put(keep, []byte("a")))
				require.NoError(t, store.Put(drop, []byte("b")))

				assert.True(t, store.Delete(drop))
				assert.False(t, store.Delete(drop))
				assert.False(t, store.Delete(uuid.NewString()))

				_, err := store.Get(drop)
				assert.ErrorIs(t, err, ErrKeyNotFound)
				assert.Equal(t, []string{keep}, store.List())
			},
		},
		{
			name: "nil and empty records come back empty",
			run: func(t *testing.T, store *MemoryStore) {
				for _, record := range [][]byte{nil, {}} {
					id := uuid.NewString()
					require.NoError(t, store.Put(id, record))

					got, err := store.Get(id)
					require.NoError(t, err)
					assert.NotNil(t, got)
					assert.Empty(t, got)
				}
			},
		},
		{
			name: "records are copied in and out",
			run: func(t *testing.T, store *MemoryStore) {
				id := uuid.NewString()
				in := []byte(`{"name":"lala"}`)
				require.NoError(t, store.Put(id, in))
				in[0] = 'X'

				out, err := store.Get(id)
				require.NoError(t, err)
				out[1] = 'Y'

				got, err := store.Get(id)
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"name":"lala"}`), got)
			},
		},
		{
			name: "range visits every record",
			run: func(t *testing.T, store *MemoryStore) {
				want := make(map[string]string)
				for i := 0; i < 25; i++ {
					id := uuid.NewString()
					want[id] = fmt.Sprintf(`{"n":%d}`, i)
					require.NoError(t, store.Put(id, []byte(want[id])))
				}

				got := make(map[string]string)
				require.NoError(t, store.Range(func(id string, value []byte) bool {
					got[id] = string(value)
					return true
				}))
				assert.Equal(t, want, got)
				assert.ElementsMatch(t, keysOf(want), store.List())
			},
		},
		{
			name: "range stops when fn returns false",
			run: func(t *testing.T, store *MemoryStore) {
				for i := 0; i < 5; i++ {
					require.NoError(t, store.Put(uuid.NewString(), []byte("v")))
				}

				visits := 0
				require.NoError(t, store.Range(func(string, []byte) bool {
					visits++
					return false
				}))
				assert.Equal(t, 1, visits)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachCodec(t, tt.run)
		})
	}
}

func TestMemoryStoreStats(t *testing.T) {
	t.Run("raw counts value bytes", func(t *testing.T) {
		store := NewMemoryStoreWithCodec(RawCodec{})
		ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

		require.NoError(t, store.Put(ids[0], []byte("123456")))
		require.NoError(t, store.Put(ids[1], []byte("1234567")))
		require.NoError(t, store.Put(ids[2], []byte("12345678")))
		assert.Equal(t, StoreStats{Keys: 3, Bytes: 6 + 7 + 8}, store.Stats())

		store.Delete(ids[1])
		assert.Equal(t, StoreStats{Keys: 2, Bytes: 6 + 8}, store.Stats())
		assert.Equal(t, 2, store.Len())
	})

	t.Run("snappy counts bytes at rest", func(t *testing.T) {
		store := NewMemoryStoreWithCodec(SnappyCodec{})
		record := []byte(fmt.Sprintf(`{"blob":"%0512d"}`, 0))
		require.NoError(t, store.Put(uuid.NewString(), record))

		stats := store.Stats()
		assert.Equal(t, 1, stats.Keys)
		assert.Less(t, stats.Bytes, len(record))
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	forEachCodec(t, func(t *testing.T, store *MemoryStore) {
		const workers = 16
		const perWorker = 200

		ids := make([][]string, workers)
		for w := range ids {
			ids[w] = make([]string, perWorker)
			for i := range ids[w] {
				ids[w][i] = uuid.NewString()
			}
		}

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i, id := range ids[w] {
					value := []byte(fmt.Sprintf("w%d-%d", w, i))
					if err := store.Put(id, value); err != nil {
						t.Errorf("put %s: %v", id, err)
						return
					}
					if _, err := store.Replace(id, value); err != nil {
						t.Errorf("replace %s: %v", id, err)
					}
					if i%4 == 0 {
						store.Delete(id)
					}
				}
			}(w)

			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					store.Stats()
					_ = store.Range(func(string, []byte) bool { return true })
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, workers*perWorker*3/4, store.Len())
		for w := range ids {
			for i, id := range ids[w] {
				got, err := store.Get(id)
				if i%4 == 0 {
					assert.ErrorIs(t, err, ErrKeyNotFound)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("w%d-%d", w, i), string(got))
			}
		}
	})
}

func TestStoreInterface(t *testing.T) {
	var _ Store = (*MemoryStore)(nil)
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
