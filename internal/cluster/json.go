package cluster

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEncode is returned when a value cannot be marshaled to JSON.
	ErrEncode = errors.New("encode record value")
	// ErrDecode is returned when a stored value does not unmarshal into the
	// requested type.
	ErrDecode = errors.New("decode record value")
)

// InsertJSON stores v as a JSON document and returns the generated id.
// Nothing is stored if v cannot be marshaled.
func InsertJSON[T any](c *Cluster, v T) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return c.Insert(data)
}

// SelectJSON loads the record stored under id into a T. ok is false when
// the record does not exist.
func SelectJSON[T any](c *Cluster, id string) (out T, ok bool, err error) {
	data, ok := c.Select(id)
	if !ok {
		return out, false, nil
	}
	if err = json.Unmarshal(data, &out); err != nil {
		return out, true, fmt.Errorf("%w: %s: %v", ErrDecode, id, err)
	}
	return out, true, nil
}

// UpdateJSON replaces the record stored under id with v as a JSON document.
// Like Update, an unknown id is a no-op.
func UpdateJSON[T any](c *Cluster, id string, v T) (bool, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return c.Update(id, data)
}
