package quadtree

import (
	"io"
	"log/slog"
)

const (
	// DefaultMaxDepth bounds how deep a collision may subdivide the tree.
	DefaultMaxDepth = 48

	// DefaultMaxLevelsUp is the number of ancestor levels FindNearest climbs.
	DefaultMaxLevelsUp = 8

	// DefaultBatchConcurrency limits the goroutines used by FindNearestBatch.
	DefaultBatchConcurrency = 8
)

type options struct {
	maxDepth         int
	maxLevelsUp      int
	batchConcurrency int
	logger           *slog.Logger
}

// Option configures a Quadtree.
type Option func(*options)

func defaultOptions() options {
	return options{
		maxDepth:         DefaultMaxDepth,
		maxLevelsUp:      DefaultMaxLevelsUp,
		batchConcurrency: DefaultBatchConcurrency,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithMaxDepth sets the deepest level a node may be created at. The root is depth 0.
// Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxDepth = n
		}
	}
}

// WithMaxLevelsUp sets how many ancestors FindNearest visits before giving up.
// Negative values keep the default.
func WithMaxLevelsUp(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxLevelsUp = n
		}
	}
}

// WithLogger sets the logger. Inserts are logged at debug level, rejected
// inserts at warn level. Passing nil keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBatchConcurrency limits the number of queries SyncQuadtree.FindNearestBatch runs at once.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.batchConcurrency = n
		}
	}
}
