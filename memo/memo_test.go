package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByJuanDiego/graphclust/graph"
	"github.com/ByJuanDiego/graphclust/metric"
)

func point(t *testing.T, path string, x float64) *graph.Graph {
	t.Helper()

	g, err := graph.New(path, []graph.Vertex{{X: x}}, nil)
	require.NoError(t, err)

	return g
}

// countingMetric wraps a metric and counts invocations.
func countingMetric(fn metric.Func, calls *int) metric.Func {
	return func(a, b *graph.Graph) (float64, error) {
		*calls++
		return fn(a, b)
	}
}

func TestDistanceMemoizes(t *testing.T) {
	a := point(t, "a", 0)
	b := point(t, "b", 3)

	var calls int
	e := New(countingMetric(metric.EuclideanDistance, &calls))

	d, err := e.Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-9)
	assert.Equal(t, 1, calls)

	// Hit under the same ordering.
	d, err = e.Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-9)
	assert.Equal(t, 1, calls)

	// Hit under the reversed ordering.
	d, err = e.Distance(b, a)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-9)
	assert.Equal(t, 1, calls)
}

func TestCachedBothOrderings(t *testing.T) {
	a := point(t, "a", 0)
	b := point(t, "b", 1)

	e := New(metric.EuclideanDistance)

	_, ok := e.Cached(a, b)
	assert.False(t, ok)

	e.Store(a, b, 1.0)

	d, ok := e.Cached(a, b)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, d, 1e-9)

	d, ok = e.Cached(b, a)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, d, 1e-9)
}

func TestIdenticalGraph(t *testing.T) {
	a := point(t, "a", 4)

	var calls int
	e := New(countingMetric(metric.EuclideanDistance, &calls))

	d, err := e.Distance(a, a)
	require.NoError(t, err)
	assert.Zero(t, d)
	assert.Zero(t, calls)
}

func TestComputeBypassesCache(t *testing.T) {
	a := point(t, "a", 0)
	b := point(t, "b", 2)

	var calls int
	e := New(countingMetric(metric.EuclideanDistance, &calls))

	_, err := e.Compute(a, b)
	require.NoError(t, err)
	_, err = e.Compute(a, b)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Zero(t, e.Len())
}

func TestExportSeedRoundTrip(t *testing.T) {
	a := point(t, "a", 0)
	b := point(t, "b", 1)
	c := point(t, "c", 5)

	var calls int
	e := New(countingMetric(metric.EuclideanDistance, &calls))

	_, err := e.Distance(a, b)
	require.NoError(t, err)
	_, err = e.Distance(b, c)
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	entries := e.Export()
	assert.Len(t, entries, 2)

	var seededCalls int
	seeded := New(countingMetric(metric.EuclideanDistance, &seededCalls), WithSeed(entries))

	d, err := seeded.Distance(c, b)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-9)
	assert.Zero(t, seededCalls)
}

func TestStats(t *testing.T) {
	a := point(t, "a", 0)
	b := point(t, "b", 1)

	e := New(metric.EuclideanDistance)

	// Cached is a pure lookup and must not move the counters.
	_, _ = e.Cached(a, b)
	_, _ = e.Cached(b, a)

	hits, misses := e.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)

	_, err := e.Distance(a, b)
	require.NoError(t, err)
	_, err = e.Distance(b, a)
	require.NoError(t, err)

	hits, misses = e.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	_, _ = e.Cached(a, b)

	hits, misses = e.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestErrorPropagation(t *testing.T) {
	a := point(t, "a", 0)
	mismatched, err := graph.New("b", []graph.Vertex{{}, {}}, nil)
	require.NoError(t, err)

	e := New(metric.EuclideanDistance)

	_, err = e.Distance(a, mismatched)
	require.Error(t, err)
	assert.Zero(t, e.Len())
}
