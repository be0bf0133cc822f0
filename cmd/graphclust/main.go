// Command graphclust clusters persisted pose-graph datasets from the
// command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "graphclust",
		Short:   "cluster collections of 3D pose graphs",
		Version: version,
		Long: `
graphclust groups fixed-topology landmark graphs (e.g. 3D body poses
extracted from images) into clusters of mutually similar graphs, without
a preset cluster count. Datasets are read and written in the versioned
.pgb container format, from a local directory or an S3 bucket.
`,
	}

	root.AddCommand(newClusterCmd())
	root.AddCommand(newInspectCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
