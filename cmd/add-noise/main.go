package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dd0wney/cluso-conceal/pkg/app"
	"github.com/dd0wney/cluso-conceal/pkg/config"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		out        = flag.String("out", "noisy_graph.txt", "Edge list to write (local path or s3://bucket/key)")
		beta       = flag.Float64("beta", 0, "Probability a pair keeps its state (overrides config)")
		seed       = flag.Uint64("seed", 0, "Random seed (overrides config, 0 = clock)")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <edges>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	edgesPath := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "beta":
			cfg.Noise.Beta = *beta
		case "seed":
			cfg.Seed = *seed
		case "v":
			cfg.VerboseLogging = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, app.Options{
		Component: "add-noise",
		Locations: []string{edgesPath, *out},
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := run(ctx, a, edgesPath, *out); err != nil {
		a.Logger.Error("noise injection failed", logging.Error(err))
		a.Finish()
		os.Exit(app.ExitCode(err))
	}
	a.Finish()
}

func run(ctx context.Context, a *app.App, edgesPath, out string) error {
	g, err := a.LoadGraph(ctx, edgesPath)
	if err != nil {
		return err
	}

	noisy, stats, err := a.Noise().AddEdgeNoiseStats(g, a.Config.Noise.Beta)
	if err != nil {
		return err
	}

	if err := a.Opener.SaveGraph(ctx, out, noisy); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	a.Logger.Info("noisy graph written",
		logging.Beta(a.Config.Noise.Beta),
		logging.Int("added", stats.EdgesAdded),
		logging.Int("removed", stats.EdgesRemoved),
		logging.Edges(noisy.EdgeCount()),
		logging.Path(out),
	)
	return nil
}
