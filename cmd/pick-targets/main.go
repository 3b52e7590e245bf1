package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-conceal/pkg/app"
	"github.com/dd0wney/cluso-conceal/pkg/config"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		out        = flag.String("out", "targets.txt", "Target list to write (local path or s3://bucket/key)")
		sizes      = flag.String("sizes", "", "Comma-separated target sizes (overrides config)")
		samples    = flag.Int("samples", 0, "Samples per qualifying community (overrides config)")
		policy     = flag.String("policy", "", "Qualification policy: simple or bounded (overrides config)")
		seed       = flag.Uint64("seed", 0, "Random seed (overrides config, 0 = clock)")
		verbose    = flag.Bool("v", false, "Verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <edges> <assignment>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(2)
	}
	edgesPath, asstPath := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var overrideErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sizes":
			cfg.Sampler.TargetSizes, overrideErr = parseSizes(*sizes)
		case "samples":
			cfg.Sampler.SamplesPerCommunity = *samples
		case "policy":
			cfg.Sampler.Policy = *policy
		case "seed":
			cfg.Seed = *seed
		case "v":
			cfg.VerboseLogging = *verbose
		}
	})
	if overrideErr != nil {
		log.Fatalf("Invalid -sizes: %v", overrideErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, app.Options{
		Component: "pick-targets",
		Locations: []string{edgesPath, asstPath, *out},
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := run(ctx, a, edgesPath, asstPath, *out); err != nil {
		a.Logger.Error("target picking failed", logging.Error(err))
		a.Finish()
		os.Exit(app.ExitCode(err))
	}
	a.Finish()
}

func run(ctx context.Context, a *app.App, edgesPath, asstPath, out string) error {
	g, err := a.LoadGraph(ctx, edgesPath)
	if err != nil {
		return err
	}
	p, err := a.LoadPartition(ctx, asstPath)
	if err != nil {
		return err
	}

	sampler, err := a.Sampler()
	if err != nil {
		return err
	}
	sets, err := sampler.Sample(g, p)
	if err != nil {
		return err
	}

	if err := a.Opener.SaveTargetSets(ctx, out, sets); err != nil {
		return fmt.Errorf("failed to write targets: %w", err)
	}
	a.Logger.Info("targets written", logging.Path(out), logging.Count(len(sets)))
	return nil
}

func parseSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
