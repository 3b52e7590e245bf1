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
	"github.com/dd0wney/cluso-conceal/pkg/results"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		alpha       = flag.Float64("alpha", 0, "Weight of the first concealment measure (overrides config)")
		resultsFile = flag.String("results", "", "Results file to append to (overrides config)")
		databaseURL = flag.String("database-url", "", "PostgreSQL connection string (overrides config, or set DATABASE_URL)")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <edges> <assignment> <target> [target...]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 3 {
		flag.Usage()
		os.Exit(2)
	}
	edgesPath, asstPath := flag.Arg(0), flag.Arg(1)
	targets := graph.NewTargetSet(flag.Args()[2:]...)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "alpha":
			cfg.Scoring.Alpha = *alpha
		case "results":
			cfg.Storage.ResultsFile = *resultsFile
		case "database-url":
			cfg.Storage.DatabaseURL = *databaseURL
		case "v":
			cfg.VerboseLogging = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, app.Options{
		Component: "summarize-results",
		Locations: []string{edgesPath, asstPath},
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := run(ctx, a, edgesPath, asstPath, targets); err != nil {
		a.Logger.Error("summary failed", logging.Error(err))
		a.Finish()
		os.Exit(app.ExitCode(err))
	}
	a.Finish()
}

func run(ctx context.Context, a *app.App, edgesPath, asstPath string, targets graph.TargetSet) error {
	g, err := a.LoadGraph(ctx, edgesPath)
	if err != nil {
		return err
	}
	p, err := a.LoadPartition(ctx, asstPath)
	if err != nil {
		return err
	}

	eval, err := a.Scorer().Evaluate(g, p, targets, a.Config.Scoring.Alpha)
	if err != nil {
		return err
	}

	store, err := a.OpenResultStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := results.NewRecord(targets, eval)
	if err := store.Append(ctx, rec); err != nil {
		return err
	}

	fmt.Println(results.FormatResultLine(eval.Concealment, eval.Detected))
	a.Logger.Info("trial recorded",
		logging.String("id", rec.ID),
		logging.Targets(targets),
		logging.Float64("concealment", eval.Concealment),
		logging.Bool("detected", eval.Detected),
	)
	return nil
}
