package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"aspectgraph/internal/seed"
)

var seedFlags struct {
	dataset string
	workers int
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a dataset of elements and recipes into the graph",
	Long: "Loads elements and recipes into the graph database. Without --dataset\n" +
		"the built-in dataset is used. Base values are derived from the recipe\n" +
		"structure before writing.",
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedFlags.dataset, "dataset", "", "Path to a dataset JSON file (default: built-in dataset)")
	f.IntVar(&seedFlags.workers, "workers", 4, "Number of concurrent writers")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ds := seed.Default()
	if seedFlags.dataset != "" {
		loaded, err := seed.Load(seedFlags.dataset)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		ds = loaded
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	start := time.Now()
	a.logger.Info("seeding graph",
		"elements", len(ds.Elements),
		"recipes", len(ds.Recipes),
		"workers", seedFlags.workers,
	)

	loader := seed.NewBulkLoader(a.repo, seedFlags.workers)
	if err := loader.Load(ctx, ds); err != nil {
		return err
	}

	a.logger.Info("seeding complete",
		"duration", time.Since(start).String(),
		"elements", len(ds.Elements),
		"recipes", len(ds.Recipes),
	)
	return nil
}
