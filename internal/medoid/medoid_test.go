package medoid

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByJuanDiego/graphclust/graph"
	"github.com/ByJuanDiego/graphclust/memo"
	"github.com/ByJuanDiego/graphclust/metric"
)

var _ Evaluator = (*memo.Evaluator)(nil)

func points(t *testing.T, xs ...float64) []*graph.Graph {
	t.Helper()

	graphs := make([]*graph.Graph, 0, len(xs))
	for i, x := range xs {
		g, err := graph.New(string(rune('a'+i)), []graph.Vertex{{X: x}}, nil)
		require.NoError(t, err)
		graphs = append(graphs, g)
	}

	return graphs
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		_, err := Select(ctx, memo.New(metric.EuclideanDistance), nil, 0)
		assert.ErrorIs(t, err, ErrEmptySet)
	})

	t.Run("Singleton", func(t *testing.T) {
		s := points(t, 7)
		i, err := Select(ctx, memo.New(metric.EuclideanDistance), s, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	})

	t.Run("Colinear", func(t *testing.T) {
		// Sums: a=1+10=11, b=1+9=10, c=10+9=19 -> medoid is b.
		s := points(t, 0, 1, 10)
		i, err := Select(ctx, memo.New(metric.EuclideanDistance), s, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, i)
	})

	t.Run("TieBreaksFirst", func(t *testing.T) {
		// Symmetric pair: both sums equal, first index wins.
		s := points(t, 0, 2)
		i, err := Select(ctx, memo.New(metric.EuclideanDistance), s, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	})

	t.Run("ErrorPropagates", func(t *testing.T) {
		a, err := graph.New("a", []graph.Vertex{{}}, nil)
		require.NoError(t, err)
		b, err := graph.New("b", []graph.Vertex{{}, {}}, nil)
		require.NoError(t, err)

		_, err = Select(ctx, memo.New(metric.EuclideanDistance), []*graph.Graph{a, b}, 2)
		assert.Error(t, err)
	})
}

// trackingEvaluator wraps a memo.Evaluator and counts metric invocations
// and cache writes, guarding the counter for parallel Compute calls.
type trackingEvaluator struct {
	*memo.Evaluator
	computes atomic.Int64

	mu     sync.Mutex
	stores int
}

func (e *trackingEvaluator) Compute(a, b *graph.Graph) (float64, error) {
	e.computes.Add(1)
	return e.Evaluator.Compute(a, b)
}

func (e *trackingEvaluator) Store(a, b *graph.Graph, d float64) {
	e.mu.Lock()
	e.stores++
	e.mu.Unlock()
	e.Evaluator.Store(a, b, d)
}

func TestSelectParallelFill(t *testing.T) {
	ctx := context.Background()
	s := points(t, 0, 1, 2, 3, 10, 11)

	eval := &trackingEvaluator{Evaluator: memo.New(metric.EuclideanDistance)}

	_, err := Select(ctx, eval, s, 4)
	require.NoError(t, err)

	// Each unordered pair computed and stored exactly once.
	pairs := int64(len(s) * (len(s) - 1) / 2)
	assert.Equal(t, pairs, eval.computes.Load())
	assert.Equal(t, int(pairs), eval.stores)

	// A second selection is served fully from the cache.
	_, err = Select(ctx, eval, s, 4)
	require.NoError(t, err)
	assert.Equal(t, pairs, eval.computes.Load())
}

func TestFarthest(t *testing.T) {
	eval := memo.New(metric.EuclideanDistance)

	t.Run("Empty", func(t *testing.T) {
		_, err := Farthest(eval, nil, 0)
		assert.ErrorIs(t, err, ErrEmptySet)
	})

	t.Run("Argmax", func(t *testing.T) {
		// Distances from seed 0: 0, 5, 10, 3. The true maximum is at
		// index 2, not the first positive candidate.
		s := points(t, 0, 5, 10, 3)
		i, err := Farthest(eval, s, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, i)
	})

	t.Run("TieBreaksFirst", func(t *testing.T) {
		s := points(t, 0, 5, -5)
		i, err := Farthest(eval, s, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, i)
	})

	t.Run("Singleton", func(t *testing.T) {
		s := points(t, 3)
		i, err := Farthest(eval, s, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	})
}
