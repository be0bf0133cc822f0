// Package memo wraps a distance metric with a symmetric cache keyed by
// the unordered pair of graph identifiers. The clustering algorithms only
// ever evaluate distances through an Evaluator; raw metrics are never
// called directly during clustering.
//
// An Evaluator is NOT goroutine-safe. Parallel callers (the medoid
// selector) compute raw distances via Compute and hand the results back
// to the single orchestrating goroutine, which is the sole writer of the
// cache via Store.
package memo

import (
	"github.com/ByJuanDiego/graphclust/graph"
	"github.com/ByJuanDiego/graphclust/metric"
)

type pairKey struct {
	a, b string
}

// Entry is one persisted cache entry with A <= B lexicographically.
type Entry struct {
	A        string  `json:"a"`
	B        string  `json:"b"`
	Distance float64 `json:"distance"`
}

// Evaluator memoizes a distance metric.
type Evaluator struct {
	fn    metric.Func
	cache map[pairKey]float64

	hits, misses uint64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSeed pre-populates the cache from persisted entries. Both orderings
// of each pair are restored.
func WithSeed(entries []Entry) Option {
	return func(e *Evaluator) {
		for _, en := range entries {
			e.cache[pairKey{en.A, en.B}] = en.Distance
			e.cache[pairKey{en.B, en.A}] = en.Distance
		}
	}
}

// New creates an Evaluator around the given metric.
func New(fn metric.Func, opts ...Option) *Evaluator {
	e := &Evaluator{
		fn:    fn,
		cache: make(map[pairKey]float64),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Distance returns the memoized distance between a and b. On a miss it
// invokes the wrapped metric and stores the result under both orderings.
// Hit/miss counters are maintained here only; Cached stays a pure
// lookup.
func (e *Evaluator) Distance(a, b *graph.Graph) (float64, error) {
	if d, ok := e.Cached(a, b); ok {
		e.hits++
		return d, nil
	}
	e.misses++

	d, err := e.fn(a, b)
	if err != nil {
		return 0, err
	}

	e.Store(a, b, d)

	return d, nil
}

// Cached returns the stored distance for (a,b), if any. It is a pure
// lookup with no side effects.
func (e *Evaluator) Cached(a, b *graph.Graph) (float64, bool) {
	if a.Path() == b.Path() {
		return 0, true
	}

	d, ok := e.cache[pairKey{a.Path(), b.Path()}]

	return d, ok
}

// Compute invokes the wrapped metric without touching the cache. Safe to
// call from parallel workers.
func (e *Evaluator) Compute(a, b *graph.Graph) (float64, error) {
	return e.fn(a, b)
}

// Store records a distance under both orderings of the pair.
func (e *Evaluator) Store(a, b *graph.Graph, d float64) {
	e.cache[pairKey{a.Path(), b.Path()}] = d
	e.cache[pairKey{b.Path(), a.Path()}] = d
}

// Len returns the number of cached entries, both orderings counted.
func (e *Evaluator) Len() int { return len(e.cache) }

// Stats returns cache hit and miss counters.
func (e *Evaluator) Stats() (hits, misses uint64) { return e.hits, e.misses }

// Export returns the cache content with one Entry per unordered pair,
// suitable for persistence and later seeding via WithSeed.
func (e *Evaluator) Export() []Entry {
	entries := make([]Entry, 0, len(e.cache)/2)

	for k, d := range e.cache {
		if k.a > k.b {
			continue
		}
		entries = append(entries, Entry{A: k.a, B: k.b, Distance: d})
	}

	return entries
}
