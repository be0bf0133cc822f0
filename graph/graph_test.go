package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	vertices := []Vertex{{X: 0}, {X: 1}, {X: 2}}

	t.Run("Valid", func(t *testing.T) {
		g, err := New("a.jpg", vertices, []Edge{{U: 0, V: 1}, {U: 1, V: 2}})
		require.NoError(t, err)
		assert.Equal(t, "a.jpg", g.Path())
		assert.Equal(t, 3, g.VertexCount())
		assert.Len(t, g.Edges(), 2)
	})

	t.Run("EdgeOutOfRange", func(t *testing.T) {
		_, err := New("a.jpg", vertices, []Edge{{U: 0, V: 3}})
		assert.Error(t, err)
	})

	t.Run("NegativeIndex", func(t *testing.T) {
		_, err := New("a.jpg", vertices, []Edge{{U: -1, V: 1}})
		assert.Error(t, err)
	})
}

func TestSameTopology(t *testing.T) {
	v3 := []Vertex{{}, {}, {}}

	mk := func(edges ...Edge) *Graph {
		g, err := New("g", v3, edges)
		require.NoError(t, err)
		return g
	}

	tests := []struct {
		name     string
		a, b     *Graph
		expected bool
	}{
		{"Identical", mk(Edge{0, 1}, Edge{1, 2}), mk(Edge{0, 1}, Edge{1, 2}), true},
		{"ReversedEdges", mk(Edge{0, 1}, Edge{1, 2}), mk(Edge{1, 0}, Edge{2, 1}), true},
		{"ReorderedEdges", mk(Edge{0, 1}, Edge{1, 2}), mk(Edge{1, 2}, Edge{0, 1}), true},
		{"DifferentEdges", mk(Edge{0, 1}, Edge{1, 2}), mk(Edge{0, 1}, Edge{0, 2}), false},
		{"FewerEdges", mk(Edge{0, 1}, Edge{1, 2}), mk(Edge{0, 1}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.SameTopology(tt.b))
			assert.Equal(t, tt.expected, tt.b.SameTopology(tt.a))
		})
	}

	t.Run("DifferentVertexCount", func(t *testing.T) {
		a, err := New("a", v3, nil)
		require.NoError(t, err)
		b, err := New("b", []Vertex{{}, {}}, nil)
		require.NoError(t, err)
		assert.False(t, a.SameTopology(b))
	})
}

func TestCluster(t *testing.T) {
	centroid, err := New("c", []Vertex{{}}, nil)
	require.NoError(t, err)
	member, err := New("m", []Vertex{{}}, nil)
	require.NoError(t, err)

	c := NewCluster(centroid)

	assert.Equal(t, centroid, c.Centroid())
	assert.Equal(t, 1, c.Size())
	assert.True(t, c.Contains("c"))

	c.Add(member)

	assert.Equal(t, 2, c.Size())
	assert.True(t, c.Contains("m"))
	assert.False(t, c.Contains("x"))
	assert.Equal(t, []*Graph{centroid, member}, c.Members())
}
