package fixturecheck

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	logger      *zap.Logger
	parallelism int
	now         func() time.Time
}

// Option configures a Runner or a Suite.
type Option interface {
	apply(*options)
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:      zap.NewNop(),
		parallelism: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt.apply(o)
	}
	return o
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithLogger sets the logger used for per-fixture events. A nil logger is
// ignored.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithParallelism bounds how many bodies RunAll invokes at once. Values
// below 1 are treated as 1. Results keep declaration order regardless.
func WithParallelism(n int) Option {
	return optionFunc(func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	})
}

// WithClock replaces the time source used to measure durations.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		if now != nil {
			o.now = now
		}
	})
}
