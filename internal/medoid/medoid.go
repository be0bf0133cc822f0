// Package medoid selects central and peripheral elements of a graph set
// under a memoized distance evaluator.
//
// Select fans the uncached pairwise distances out over a bounded
// errgroup. Workers compute raw distances only and write disjoint result
// slots; the calling goroutine stores everything into the cache after
// the group has drained. The group is scoped to the call, so no workers
// outlive an invocation.
package medoid

import (
	"context"
	"errors"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ByJuanDiego/graphclust/graph"
)

// ErrEmptySet is returned when selection is attempted on an empty set.
// Callers are expected to guarantee non-empty input; hitting this is a
// programming error, not a recoverable runtime condition.
var ErrEmptySet = errors.New("medoid: empty graph set")

// Evaluator is the distance access contract Select and Farthest need.
// memo.Evaluator satisfies it.
type Evaluator interface {
	// Distance returns the memoized distance, computing on a miss.
	Distance(a, b *graph.Graph) (float64, error)
	// Cached returns the stored distance, if any, without computing.
	Cached(a, b *graph.Graph) (float64, bool)
	// Compute invokes the raw metric without touching the cache.
	Compute(a, b *graph.Graph) (float64, error)
	// Store records a computed distance under both orderings.
	Store(a, b *graph.Graph, d float64)
}

// Select returns the index of the medoid of s: the element minimizing
// the sum of distances to all other elements. Uncached pairs are
// evaluated in parallel with at most workers goroutines (GOMAXPROCS if
// workers <= 0).
func Select(ctx context.Context, eval Evaluator, s []*graph.Graph, workers int) (int, error) {
	n := len(s)
	if n == 0 {
		return -1, ErrEmptySet
	}
	if n == 1 {
		return 0, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type pair struct {
		i, j int
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}

	var missing []pair

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d, ok := eval.Cached(s[i], s[j]); ok {
				dist[i][j] = d
			} else {
				missing = append(missing, pair{i, j})
			}
		}
	}

	if len(missing) > 0 {
		results := make([]float64, len(missing))

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for k, p := range missing {
			k, p := k, p
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				d, err := eval.Compute(s[p.i], s[p.j])
				if err != nil {
					return err
				}

				results[k] = d

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return -1, err
		}

		// Sole cache writer: workers are done, results are owned here.
		for k, p := range missing {
			eval.Store(s[p.i], s[p.j], results[k])
			dist[p.i][p.j] = results[k]
		}
	}

	best := -1
	bestSum := math.Inf(1)

	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if j > i {
				sum += dist[i][j]
			} else {
				sum += dist[j][i]
			}
		}

		if sum < bestSum {
			best = i
			bestSum = sum
		}
	}

	return best, nil
}

// Farthest returns the index maximizing distance(s[seed], s[i]) over all
// i, ties broken by first occurrence.
func Farthest(eval Evaluator, s []*graph.Graph, seed int) (int, error) {
	if len(s) == 0 {
		return -1, ErrEmptySet
	}

	best := -1
	bestDist := math.Inf(-1)

	for i := range s {
		d, err := eval.Distance(s[seed], s[i])
		if err != nil {
			return -1, err
		}

		if d > bestDist {
			best = i
			bestDist = d
		}
	}

	return best, nil
}
