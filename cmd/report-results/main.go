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
	"github.com/dd0wney/cluso-conceal/pkg/results"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		resultsFile = flag.String("results", "", "Results file to read (overrides config)")
		databaseURL = flag.String("database-url", "", "PostgreSQL connection string (overrides config, or set DATABASE_URL)")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
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
	a, err := app.New(ctx, cfg, app.Options{Component: "report-results"})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := run(ctx, a); err != nil {
		a.Logger.Error("report failed", logging.Error(err))
		os.Exit(app.ExitCode(err))
	}
}

func run(ctx context.Context, a *app.App) error {
	store, err := a.OpenResultStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(ctx)
	if err != nil {
		return err
	}

	fmt.Println(results.RenderSummary(results.Summarize(records)))
	a.Logger.Debug("report rendered", logging.Count(len(records)))
	return nil
}
