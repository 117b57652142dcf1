package symtree

import (
	"fmt"
	"io"
	"log/slog"
)

// Option configures a Simplifier or a Differentiator.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	maxRewrites int
}

// DefaultMaxRewrites leaves the number of fired simplification rules unbounded.
const DefaultMaxRewrites = 0

// WithLogger sets the logger that traces fired rules at debug level.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(nilArgument("logger"))
	}
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxRewrites bounds the rules a single Simplify call may fire; 0 is
// unbounded. Negative values panic.
func WithMaxRewrites(n int) Option {
	if n < 0 {
		panic(fmt.Errorf("%w: max rewrites %d < 0", ErrInvalidConfig, n))
	}
	return func(o *options) {
		o.maxRewrites = n
	}
}

func gatherOptions(opts []Option) options {
	o := options{maxRewrites: DefaultMaxRewrites}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
