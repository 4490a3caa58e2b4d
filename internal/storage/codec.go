package storage

import (
	"fmt"

	"github.com/golang/snappy"
)

// Codec converts record values to and from the form a store holds at rest.
// Encode and Decode must always return freshly allocated slices.
type Codec interface {
	Encode(value []byte) ([]byte, error)
	Decode(stored []byte) ([]byte, error)
	Name() string
}

// RawCodec stores values unchanged.
type RawCodec struct{}

func (RawCodec) Encode(value []byte) ([]byte, error) { return clone(value), nil }

func (RawCodec) Decode(stored []byte) ([]byte, error) { return clone(stored), nil }

func (RawCodec) Name() string { return "raw" }

// SnappyCodec compresses values with snappy block encoding.
type SnappyCodec struct{}

func (SnappyCodec) Encode(value []byte) ([]byte, error) {
	return snappy.Encode(nil, value), nil
}

func (SnappyCodec) Decode(stored []byte) ([]byte, error) {
	value, err := snappy.Decode(nil, stored)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (SnappyCodec) Name() string { return "snappy" }

// clone copies b, mapping nil to an empty slice.
func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
