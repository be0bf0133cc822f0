package graphclust

import (
	"context"
	"slices"

	"github.com/ByJuanDiego/graphclust/dataset"
	"github.com/ByJuanDiego/graphclust/graph"
	"github.com/ByJuanDiego/graphclust/internal/medoid"
	"github.com/ByJuanDiego/graphclust/memo"
	"github.com/ByJuanDiego/graphclust/metric"
)

// DefaultMaxIterations bounds the inner prototype refinement loop.
const DefaultMaxIterations = 100

// Engine clusters a graph collection under a distance metric and a
// similarity threshold. Construct with New; an Engine holds no state
// shared with other instances.
//
// Engine is not goroutine-safe; run one Fit/FitLeader at a time.
type Engine struct {
	graphs    []*graph.Graph
	threshold float64
	eval      *memo.Evaluator

	maxIterations int
	workers       int
	logger        *Logger
	progress      func(done, total int)

	centroids []*graph.Graph
	clusters  []*graph.Cluster
}

// New creates an Engine over the given graphs with a similarity threshold
// and a distance metric. All distance evaluation goes through a fresh
// memoizing evaluator; seed it with WithCacheSeed to reuse a persisted
// cache.
func New(graphs []*graph.Graph, threshold float64, fn metric.Func, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		graphs:        graphs,
		threshold:     threshold,
		eval:          memo.New(fn, o.cacheSeed...),
		maxIterations: o.maxIterations,
		workers:       o.workers,
		logger:        o.logger,
		progress:      o.progress,
	}
}

// Fit runs the iterative medoid algorithm. While graphs remain in the
// working pool, it selects the pool medoid, takes the farthest graph from
// it as the initial prototype, and refines the prototype's cluster until
// the member medoid stops moving (or the iteration bound is hit). The
// finished cluster's members leave the pool.
//
// Any metric error aborts the run; previously recorded results are
// discarded.
func (e *Engine) Fit(ctx context.Context) error {
	pool := slices.Clone(e.graphs)
	total := len(pool)

	e.centroids = nil
	e.clusters = nil

	for len(pool) > 0 {
		mi, err := medoid.Select(ctx, e.eval, pool, e.workers)
		if err != nil {
			e.reset()
			return err
		}

		fi, err := medoid.Farthest(e.eval, pool, mi)
		if err != nil {
			e.reset()
			return err
		}

		cluster, err := e.refine(ctx, pool, pool[fi])
		if err != nil {
			e.reset()
			return err
		}

		e.centroids = append(e.centroids, cluster.Centroid())
		e.clusters = append(e.clusters, cluster)

		pool = removeMembers(pool, cluster)

		e.logger.LogCluster(ctx, cluster.Centroid().Path(), cluster.Size(), len(pool))

		if e.progress != nil {
			e.progress(total-len(pool), total)
		}
	}

	e.logger.LogRun(ctx, "mean-shift", len(e.clusters), total)

	return nil
}

// refine runs the inner refinement loop for one cluster seeded with the
// given prototype. Membership is rebuilt from scratch on every iteration.
func (e *Engine) refine(ctx context.Context, pool []*graph.Graph, prototype *graph.Graph) (*graph.Cluster, error) {
	cluster := graph.NewCluster(prototype)

	for iter := 1; ; iter++ {
		for _, g := range pool {
			if g.Path() == cluster.Centroid().Path() {
				continue
			}

			admitted := true

			// Complete-link admission: within threshold of every member.
			for _, m := range cluster.Members() {
				d, err := e.eval.Distance(g, m)
				if err != nil {
					return nil, err
				}

				if d > e.threshold {
					admitted = false
					break
				}
			}

			if admitted {
				cluster.Add(g)
			}
		}

		ni, err := medoid.Select(ctx, e.eval, cluster.Members(), e.workers)
		if err != nil {
			return nil, err
		}

		next := cluster.Members()[ni]

		if next.Path() == cluster.Centroid().Path() || iter >= e.maxIterations {
			return cluster, nil
		}

		cluster = graph.NewCluster(next)
	}
}

// FitLeader runs the single-pass leader algorithm. The first input graph
// seeds the first cluster; the remaining graphs are processed in reverse
// input order and join the first cluster (in creation order) whose
// centroid is within threshold, or seed a new cluster.
func (e *Engine) FitLeader(ctx context.Context) error {
	e.centroids = nil
	e.clusters = nil

	if len(e.graphs) == 0 {
		return nil
	}

	clusters := []*graph.Cluster{graph.NewCluster(e.graphs[0])}

	for i := len(e.graphs) - 1; i >= 1; i-- {
		g := e.graphs[i]
		assigned := false

		for _, c := range clusters {
			d, err := e.eval.Distance(g, c.Centroid())
			if err != nil {
				e.reset()
				return err
			}

			if d <= e.threshold {
				c.Add(g)
				assigned = true
				break
			}
		}

		if !assigned {
			clusters = append(clusters, graph.NewCluster(g))
		}
	}

	e.clusters = clusters
	for _, c := range clusters {
		e.centroids = append(e.centroids, c.Centroid())
	}

	e.logger.LogRun(ctx, "leader", len(clusters), len(e.graphs))

	return nil
}

// Centroids returns the centroid graphs of the last completed run.
func (e *Engine) Centroids() []*graph.Graph { return e.centroids }

// Clusters returns the full clusters of the last completed run.
func (e *Engine) Clusters() []*graph.Cluster { return e.clusters }

// SaveCentroids persists the centroids of the last completed run under
// the given name.
func (e *Engine) SaveCentroids(ctx context.Context, store dataset.Store, name string) error {
	return dataset.SaveCentroids(ctx, store, name, e.centroids)
}

// LoadCentroids restores centroids persisted by a prior session,
// replacing any recorded run result.
func (e *Engine) LoadCentroids(ctx context.Context, store dataset.Store, name string) error {
	centroids, err := dataset.LoadCentroids(ctx, store, name)
	if err != nil {
		return err
	}

	e.centroids = centroids
	e.clusters = nil

	return nil
}

// CacheEntries exports the memoized distance cache for persistence.
func (e *Engine) CacheEntries() []memo.Entry { return e.eval.Export() }

func (e *Engine) reset() {
	e.centroids = nil
	e.clusters = nil
}

// removeMembers drops every member of the cluster from the pool,
// identified by path.
func removeMembers(pool []*graph.Graph, c *graph.Cluster) []*graph.Graph {
	out := pool[:0]
	for _, g := range pool {
		if !c.Contains(g.Path()) {
			out = append(out, g)
		}
	}
	return out
}
