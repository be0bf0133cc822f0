package graphclust

import "github.com/ByJuanDiego/graphclust/memo"

type options struct {
	maxIterations int
	workers       int
	logger        *Logger
	progress      func(done, total int)
	cacheSeed     []memo.Option
}

func defaultOptions() options {
	return options{
		maxIterations: DefaultMaxIterations,
		logger:        NoopLogger(),
	}
}

// Option configures Engine construction.
type Option func(*options)

// WithMaxIterations bounds the inner prototype refinement loop. Values
// below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxIterations = n
		}
	}
}

// WithWorkers bounds the worker pool used for parallel pairwise distance
// evaluation during medoid selection. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithProgress registers a callback invoked after each completed cluster
// with the number of graphs processed so far and the total.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithCacheSeed pre-populates the distance cache from entries persisted
// in a prior session.
func WithCacheSeed(entries []memo.Entry) Option {
	return func(o *options) {
		o.cacheSeed = append(o.cacheSeed, memo.WithSeed(entries))
	}
}
