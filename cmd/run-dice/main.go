package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dd0wney/cluso-conceal/pkg/app"
	"github.com/dd0wney/cluso-conceal/pkg/config"
	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		out         = flag.String("out", "", "Edge list to write (defaults to overwriting the input)")
		budget      = flag.Int("budget", 0, "Edges changed per round (overrides config)")
		disconnects = flag.Int("disconnects", 0, "Internal edges removed per round (overrides config)")
		rounds      = flag.Int("rounds", 0, "Rounds to run (overrides config)")
		seed        = flag.Uint64("seed", 0, "Random seed (overrides config, 0 = clock)")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <edges> [target...]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	edgesPath := flag.Arg(0)
	targets := graph.NewTargetSet(flag.Args()[1:]...)
	if *out == "" {
		*out = edgesPath
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "budget":
			cfg.Dice.Budget = *budget
		case "disconnects":
			cfg.Dice.Disconnects = *disconnects
		case "rounds":
			cfg.Dice.Rounds = *rounds
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
		Component: "run-dice",
		Locations: []string{edgesPath, *out},
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := run(ctx, a, edgesPath, *out, targets); err != nil {
		a.Logger.Error("DICE failed", logging.Error(err))
		a.Finish()
		os.Exit(app.ExitCode(err))
	}
	a.Finish()
}

func run(ctx context.Context, a *app.App, edgesPath, out string, targets graph.TargetSet) error {
	g, err := a.LoadGraph(ctx, edgesPath)
	if err != nil {
		return err
	}

	h, err := a.Dice()
	if err != nil {
		return err
	}
	reports, err := h.ExecuteRounds(g, targets, a.Config.Dice.Rounds)
	if err != nil {
		return err
	}

	removed, added := 0, 0
	for _, r := range reports {
		removed += len(r.Removed)
		added += len(r.Added)
	}

	if err := a.Opener.SaveGraph(ctx, out, g); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	a.Logger.Info("DICE applied",
		logging.Targets(targets),
		logging.Int("rounds", len(reports)),
		logging.Int("removed", removed),
		logging.Int("added", added),
		logging.Path(out),
	)
	return nil
}
