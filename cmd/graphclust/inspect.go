package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByJuanDiego/graphclust/dataset"
	"github.com/ByJuanDiego/graphclust/graph"
)

func newInspectCmd() *cobra.Command {
	var (
		input    string
		s3Bucket string
		s3Prefix string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "inspect <name>",
		Short: "summarize a persisted dataset part or centroid file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx, input, s3Bucket, s3Prefix)
			if err != nil {
				return err
			}

			var graphs []*graph.Graph

			switch kind {
			case "graphs":
				graphs, err = dataset.LoadGraphs(ctx, store, args[0])
			case "centroids":
				graphs, err = dataset.LoadCentroids(ctx, store, args[0])
			default:
				return fmt.Errorf("unknown kind %q", kind)
			}
			if err != nil {
				return err
			}

			return summarize(args[0], graphs)
		},
	}

	cmd.Flags().StringVar(&input, "input", ".", "directory holding the dataset files")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "read via S3 instead of the local directory")
	cmd.Flags().StringVar(&s3Prefix, "s3-prefix", "", "key prefix inside the S3 bucket")
	cmd.Flags().StringVar(&kind, "kind", "graphs", "payload kind: graphs or centroids")

	return cmd
}

func summarize(name string, graphs []*graph.Graph) error {
	fmt.Printf("%s: %d graphs\n", name, len(graphs))
	if len(graphs) == 0 {
		return nil
	}

	first := graphs[0]
	fmt.Printf("topology: %d vertices, %d edges\n", first.VertexCount(), len(first.Edges()))

	mismatched := 0
	for _, g := range graphs[1:] {
		if !first.SameTopology(g) {
			mismatched++
		}
	}
	if mismatched > 0 {
		fmt.Printf("WARNING: %d graphs do not match the topology of %s\n", mismatched, first.Path())
	}

	return nil
}
