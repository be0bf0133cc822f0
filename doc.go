// Package graphclust groups fixed-topology landmark graphs (e.g. 3D body
// poses) into clusters of mutually similar graphs, without a preset
// cluster count.
//
// # Quick Start
//
//	eng := graphclust.New(graphs, 50.0, metric.EuclideanDistance)
//
//	if err := eng.Fit(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, c := range eng.Clusters() {
//	    fmt.Println(c.Centroid().Path(), c.Size())
//	}
//
// # Algorithms
//
// Fit runs the iterative medoid algorithm: it repeatedly extracts one
// cluster from the remaining pool, refining the cluster's prototype until
// it stabilizes. Membership uses complete-link admission: a graph joins a
// candidate cluster only if it is within threshold of every current
// member, which yields tighter clusters than distance-to-centroid alone.
// The number of clusters is a function of the threshold and the metric.
//
// FitLeader runs the single-pass leader algorithm: the first graph seeds
// the first cluster, the remaining graphs are assigned to the first
// cluster whose centroid is within threshold, or seed a new one. Its
// result is sensitive to input ordering by design.
//
// # Distances
//
// Distances are evaluated through a symmetric memoizing cache (package
// memo) that can be exported and re-seeded across sessions. Any error
// from a metric (topology mismatch, degenerate edge) aborts the run;
// there is no partial clustering result.
package graphclust
