package cluster

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertJSONEncodeError(t *testing.T) {
	c := newTestCluster(t, 2)

	id, err := InsertJSON(c, map[string]any{"ch": make(chan int)})
	assert.Empty(t, id)
	assert.True(t, errors.Is(err, ErrEncode), "got %v", err)
	assert.Equal(t, 0, c.Len())
}

func TestSelectJSON(t *testing.T) {
	c := newTestCluster(t, 2)

	t.Run("missing record", func(t *testing.T) {
		_, ok, err := SelectJSON[person](c, uuid.NewString())
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("arbitrary shape", func(t *testing.T) {
		id, err := InsertJSON(c, map[string]any{"name": "lala", "tags": []string{"a", "b"}, "n": 3})
		require.NoError(t, err)

		got, ok, err := SelectJSON[map[string]any](c, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "lala", got["name"])
		assert.Equal(t, []any{"a", "b"}, got["tags"])
		assert.Equal(t, float64(3), got["n"])
	})

	t.Run("value of another type", func(t *testing.T) {
		id, err := c.Insert([]byte("not json"))
		require.NoError(t, err)

		_, ok, err := SelectJSON[person](c, id)
		assert.True(t, ok)
		assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
	})
}

func TestUpdateJSON(t *testing.T) {
	c := newTestCluster(t, 2)

	ok, err := UpdateJSON(c, uuid.NewString(), person{Name: "ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	id, err := InsertJSON(c, person{Name: "lala"})
	require.NoError(t, err)

	_, err = UpdateJSON(c, id, map[string]any{"bad": func() {}})
	assert.True(t, errors.Is(err, ErrEncode), "got %v", err)

	got, _, err := SelectJSON[person](c, id)
	require.NoError(t, err)
	assert.Equal(t, "lala", got.Name)
}
