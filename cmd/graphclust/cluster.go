package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ByJuanDiego/graphclust"
	"github.com/ByJuanDiego/graphclust/dataset"
	s3store "github.com/ByJuanDiego/graphclust/dataset/s3"
	"github.com/ByJuanDiego/graphclust/metric"
)

type clusterFlags struct {
	input      string
	prefix     string
	s3Bucket   string
	s3Prefix   string
	metricName string
	weight     float64
	threshold  float64
	algorithm  string
	workers    int
	maxIter    int
	centroids  string
	cacheFile  string
	verbose    bool
}

func newClusterCmd() *cobra.Command {
	var flags clusterFlags

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "cluster a persisted graph dataset and save the centroids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCluster(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", ".", "directory holding the dataset part files")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "graphs", "part file prefix of the dataset")
	cmd.Flags().StringVar(&flags.s3Bucket, "s3-bucket", "", "read and write via S3 instead of the local directory")
	cmd.Flags().StringVar(&flags.s3Prefix, "s3-prefix", "", "key prefix inside the S3 bucket")
	cmd.Flags().StringVar(&flags.metricName, "metric", "euclidean", "distance metric: cosine, euclidean, manhattan or weighted")
	cmd.Flags().Float64Var(&flags.weight, "weight", metric.DefaultWeight, "euclidean factor of the weighted metric")
	cmd.Flags().Float64Var(&flags.threshold, "threshold", 50.0, "maximum member distance within a cluster")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "mean-shift", "clustering algorithm: mean-shift or leader")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "distance workers per medoid computation (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&flags.maxIter, "max-iterations", graphclust.DefaultMaxIterations, "bound on prototype refinement iterations")
	cmd.Flags().StringVar(&flags.centroids, "centroids", "centroids.pgb", "output file for the resulting centroids")
	cmd.Flags().StringVar(&flags.cacheFile, "cache", "", "distance cache file to seed from and persist to")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")

	return cmd
}

func runCluster(ctx context.Context, flags clusterFlags) error {
	store, err := openStore(ctx, flags.input, flags.s3Bucket, flags.s3Prefix)
	if err != nil {
		return err
	}

	fn, err := resolveMetric(flags.metricName, flags.weight)
	if err != nil {
		return err
	}

	graphs, err := dataset.LoadParts(ctx, store, flags.prefix)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if len(graphs) == 0 {
		return fmt.Errorf("no dataset parts under prefix %q", flags.prefix)
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}

	opts := []graphclust.Option{
		graphclust.WithWorkers(flags.workers),
		graphclust.WithMaxIterations(flags.maxIter),
		graphclust.WithLogger(graphclust.NewTextLogger(level)),
	}

	if flags.cacheFile != "" {
		entries, err := dataset.LoadCache(ctx, store, flags.cacheFile)
		if err != nil && !errors.Is(err, dataset.ErrNotFound) {
			return fmt.Errorf("seed cache: %w", err)
		}
		opts = append(opts, graphclust.WithCacheSeed(entries))
	}

	bar := progressbar.NewOptions(len(graphs),
		progressbar.OptionSetDescription("Clustering"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
	opts = append(opts, graphclust.WithProgress(func(done, _ int) {
		_ = bar.Set(done)
	}))

	eng := graphclust.New(graphs, flags.threshold, fn, opts...)

	switch flags.algorithm {
	case "mean-shift":
		err = eng.Fit(ctx)
	case "leader":
		err = eng.FitLeader(ctx)
	default:
		return fmt.Errorf("unknown algorithm %q", flags.algorithm)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if err := eng.SaveCentroids(ctx, store, flags.centroids); err != nil {
		return fmt.Errorf("save centroids: %w", err)
	}

	if flags.cacheFile != "" {
		if err := dataset.SaveCache(ctx, store, flags.cacheFile, eng.CacheEntries()); err != nil {
			return fmt.Errorf("save cache: %w", err)
		}
	}

	fmt.Printf("%d graphs -> %d clusters (threshold %.2f, metric %s)\n",
		len(graphs), len(eng.Clusters()), flags.threshold, flags.metricName)

	for _, c := range eng.Clusters() {
		fmt.Printf("  %s: %d members\n", c.Centroid().Path(), c.Size())
	}

	return nil
}

func openStore(ctx context.Context, input, bucket, prefix string) (dataset.Store, error) {
	if bucket != "" {
		return s3store.New(ctx, bucket, prefix)
	}
	return dataset.NewLocalStore(input), nil
}

func resolveMetric(name string, weight float64) (metric.Func, error) {
	if name == "weighted" {
		return metric.Weighted(weight), nil
	}

	fn, ok := metric.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", name)
	}

	return fn, nil
}
