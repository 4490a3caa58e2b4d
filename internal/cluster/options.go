package cluster

import (
	"go.uber.org/zap"

	"github.com/dreamware/shardkv/internal/metrics"
	"github.com/dreamware/shardkv/internal/storage"
)

type options struct {
	logger  *zap.Logger
	metrics metrics.ClusterMetrics
	codec   storage.Codec
}

func defaultOptions() options {
	return options{
		logger:  zap.NewNop(),
		metrics: metrics.Nop(),
		codec:   storage.RawCodec{},
	}
}

// Option configures a Cluster.
type Option func(*options)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics backend. A nil backend is ignored.
func WithMetrics(m metrics.ClusterMetrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithCodec sets the at-rest encoding used by every partition.
func WithCodec(codec storage.Codec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// WithCompression stores record values snappy-compressed.
func WithCompression() Option {
	return WithCodec(storage.SnappyCodec{})
}
