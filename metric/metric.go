// Package metric provides the distance functions the clustering engine
// consumes. All metrics take two topologically identical graphs and
// return a non-negative dissimilarity (0 = identical). Every metric is
// symmetric for well-formed input.
//
// Metrics fail fast: a topology mismatch or a degenerate (zero-length)
// edge vector aborts the comparison with an error instead of producing
// a silently wrong score.
package metric

import (
	"fmt"
	"math"

	"github.com/ByJuanDiego/graphclust/graph"
)

// DefaultWeight is the euclidean contribution factor of WeightedDistance.
const DefaultWeight = 0.5

// Func is the strategy signature for distance calculation between two
// graphs. Any of the built-in metrics, or a user-supplied function,
// satisfies it.
type Func func(a, b *graph.Graph) (float64, error)

// TopologyMismatchError indicates two graphs with different vertex or
// edge structure were compared.
type TopologyMismatchError struct {
	A, B string
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("topology mismatch between %q and %q", e.A, e.B)
}

// DegenerateEdgeError indicates an edge whose displacement vector has
// zero length, for which the angular score is undefined.
type DegenerateEdgeError struct {
	Path string
	Edge graph.Edge
}

func (e *DegenerateEdgeError) Error() string {
	return fmt.Sprintf("degenerate edge (%d,%d) in %q: zero-length displacement", e.Edge.U, e.Edge.V, e.Path)
}

// CosineScore accumulates, over every edge (u,v), one minus the cosine
// of the angle between the edge displacement vectors of the two graphs.
// It captures orientation dissimilarity independent of absolute position.
func CosineScore(a, b *graph.Graph) (float64, error) {
	if !a.SameTopology(b) {
		return 0, &TopologyMismatchError{A: a.Path(), B: b.Path()}
	}

	var total float64

	for _, e := range a.Edges() {
		ua, va := a.Vertex(e.U), a.Vertex(e.V)
		ub, vb := b.Vertex(e.U), b.Vertex(e.V)

		ax, ay, az := va.X-ua.X, va.Y-ua.Y, va.Z-ua.Z
		bx, by, bz := vb.X-ub.X, vb.Y-ub.Y, vb.Z-ub.Z

		na := math.Sqrt(ax*ax + ay*ay + az*az)
		nb := math.Sqrt(bx*bx + by*by + bz*bz)

		if na == 0 {
			return 0, &DegenerateEdgeError{Path: a.Path(), Edge: e}
		}
		if nb == 0 {
			return 0, &DegenerateEdgeError{Path: b.Path(), Edge: e}
		}

		dot := ax*bx + ay*by + az*bz
		total += 1 - dot/(na*nb)
	}

	return total, nil
}

// EuclideanDistance sums the Euclidean distance between corresponding
// vertex positions. Confidence is ignored.
func EuclideanDistance(a, b *graph.Graph) (float64, error) {
	if !a.SameTopology(b) {
		return 0, &TopologyMismatchError{A: a.Path(), B: b.Path()}
	}

	var total float64

	for i := 0; i < a.VertexCount(); i++ {
		va, vb := a.Vertex(i), b.Vertex(i)
		dx, dy, dz := va.X-vb.X, va.Y-vb.Y, va.Z-vb.Z
		total += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}

	return total, nil
}

// ManhattanDistance sums the L1 distance between corresponding vertex
// positions. Confidence is ignored.
func ManhattanDistance(a, b *graph.Graph) (float64, error) {
	if !a.SameTopology(b) {
		return 0, &TopologyMismatchError{A: a.Path(), B: b.Path()}
	}

	var total float64

	for i := 0; i < a.VertexCount(); i++ {
		va, vb := a.Vertex(i), b.Vertex(i)
		total += math.Abs(va.X-vb.X) + math.Abs(va.Y-vb.Y) + math.Abs(va.Z-vb.Z)
	}

	return total, nil
}

// Weighted returns a metric combining shape and magnitude dissimilarity:
// CosineScore(a,b) + k*EuclideanDistance(a,b).
func Weighted(k float64) Func {
	return func(a, b *graph.Graph) (float64, error) {
		cos, err := CosineScore(a, b)
		if err != nil {
			return 0, err
		}

		euc, err := EuclideanDistance(a, b)
		if err != nil {
			return 0, err
		}

		return cos + k*euc, nil
	}
}

// WeightedDistance is Weighted with DefaultWeight.
func WeightedDistance(a, b *graph.Graph) (float64, error) {
	return Weighted(DefaultWeight)(a, b)
}

// ByName returns a built-in metric by its stable name: "cosine",
// "euclidean", "manhattan" or "weighted".
func ByName(name string) (Func, bool) {
	switch name {
	case "cosine":
		return CosineScore, true
	case "euclidean":
		return EuclideanDistance, true
	case "manhattan":
		return ManhattanDistance, true
	case "weighted":
		return WeightedDistance, true
	default:
		return nil, false
	}
}
