// Package graph defines the passive entities the clustering engine
// operates on: fixed-topology landmark graphs and clusters of them.
//
// A Graph is immutable once constructed. Two graphs can only be compared
// by a distance metric when they share the same topology (vertex count
// and edge set), because metrics align vertex i with vertex i and edge
// (u,v) with edge (u,v) positionally.
package graph

import "fmt"

// Vertex is one 3D landmark with its detection confidence.
type Vertex struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Confidence float64 `json:"confidence"`
}

// Edge connects two vertices by index. Edges are undirected; (u,v) and
// (v,u) name the same edge.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Graph is one sample: an ordered vertex sequence, an edge set and a
// stable external identifier (the source path of the sample).
type Graph struct {
	path     string
	vertices []Vertex
	edges    []Edge
}

// New constructs a Graph after validating that every edge references an
// existing vertex.
func New(path string, vertices []Vertex, edges []Edge) (*Graph, error) {
	n := len(vertices)
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("graph %q: edge (%d,%d) out of range for %d vertices", path, e.U, e.V, n)
		}
	}

	return &Graph{path: path, vertices: vertices, edges: edges}, nil
}

// Path returns the stable external identifier of the graph.
func (g *Graph) Path() string { return g.path }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// Vertex returns the vertex at index i.
func (g *Graph) Vertex(i int) Vertex { return g.vertices[i] }

// Vertices returns the vertex sequence. Callers must treat the slice as
// read-only.
func (g *Graph) Vertices() []Vertex { return g.vertices }

// Edges returns the edge set. Callers must treat the slice as read-only.
func (g *Graph) Edges() []Edge { return g.edges }

// SameTopology reports whether g and o have the same vertex count and
// the same undirected edge set.
func (g *Graph) SameTopology(o *Graph) bool {
	if len(g.vertices) != len(o.vertices) || len(g.edges) != len(o.edges) {
		return false
	}

	set := make(map[Edge]struct{}, len(g.edges))
	for _, e := range g.edges {
		set[normalize(e)] = struct{}{}
	}

	for _, e := range o.edges {
		if _, ok := set[normalize(e)]; !ok {
			return false
		}
	}

	return true
}

func normalize(e Edge) Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}
