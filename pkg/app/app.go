// Package app wires configuration, logging, randomness, metrics and storage
// for the command-line tools.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/dd0wney/cluso-conceal/pkg/concealment"
	"github.com/dd0wney/cluso-conceal/pkg/config"
	"github.com/dd0wney/cluso-conceal/pkg/dice"
	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/graphio"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
	"github.com/dd0wney/cluso-conceal/pkg/metrics"
	"github.com/dd0wney/cluso-conceal/pkg/noise"
	"github.com/dd0wney/cluso-conceal/pkg/results"
	"github.com/dd0wney/cluso-conceal/pkg/sampling"
	"github.com/dd0wney/cluso-conceal/pkg/targets"
	"github.com/dd0wney/cluso-conceal/pkg/validation"
)

// Exit codes returned by the tools on failure.
const (
	ExitFailure       = 1
	ExitInvalidConfig = 2
	ExitMalformed     = 3
	ExitNotFound      = 4
)

// Options describes how a tool is run.
type Options struct {
	// Component names the tool in every log line.
	Component string
	// Output receives log lines; defaults to stderr.
	Output io.Writer
	// Locations lists every input and output the tool touches. An S3 client
	// is only built when one of them is an s3:// URI.
	Locations []string
}

// App holds the collaborators shared by a tool's operations.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Rand    sampling.Source
	Metrics *metrics.Registry
	Opener  *graphio.Opener
}

// New builds an App from cfg.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger := logging.New(out, logging.Options{
		Verbose:   cfg.VerboseLogging,
		Level:     cfg.LogLevel,
		Component: opts.Component,
	})

	opener := &graphio.Opener{}
	if slices.ContainsFunc(opts.Locations, graphio.IsS3) {
		client, err := graphio.NewS3Client(ctx, cfg.Storage.S3)
		if err != nil {
			return nil, err
		}
		opener.S3 = client
	}

	logger.Debug("tool configured",
		logging.Seed(cfg.Seed),
		logging.Bool("s3", opener.S3 != nil),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Rand:    sampling.New(cfg.Seed),
		Metrics: metrics.NewRegistry(),
		Opener:  opener,
	}, nil
}

// LoadGraph reads an edge list honouring drop_self_loops.
func (a *App) LoadGraph(ctx context.Context, location string) (*graph.Graph, error) {
	g, err := a.Opener.LoadGraph(ctx, location, graphio.LoadOptions{
		DropSelfLoops: a.Config.DropSelfLoops,
		Logger:        a.Logger,
	})
	if err != nil {
		return nil, err
	}
	a.Metrics.RecordGraph(g.NodeCount(), g.EdgeCount())
	a.Logger.Info("graph loaded",
		logging.Path(location),
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
	)
	return g, nil
}

// LoadPartition reads a community assignment.
func (a *App) LoadPartition(ctx context.Context, location string) (graph.Partition, error) {
	p, err := a.Opener.LoadPartition(ctx, location)
	if err != nil {
		return nil, err
	}
	a.Logger.Info("assignment loaded",
		logging.Path(location),
		logging.Nodes(len(p)),
		logging.Int("communities", p.CommunityCount()),
	)
	return p, nil
}

// Dice builds the DICE heuristic from the dice section.
func (a *App) Dice() (*dice.Heuristic, error) {
	return dice.NewHeuristic(a.Config.DiceSettings(), dice.Options{
		Rand:    a.Rand,
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})
}

// Noise builds the edge noise injector.
func (a *App) Noise() *noise.Injector {
	return noise.NewInjector(noise.Options{
		Rand:    a.Rand,
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})
}

// Scorer builds the concealment scorer.
func (a *App) Scorer() *concealment.Scorer {
	return concealment.NewScorer(concealment.Options{
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})
}

// Sampler builds the target sampler from the sampler section.
func (a *App) Sampler() (*targets.Sampler, error) {
	return targets.NewSampler(a.Config.SamplerSettings(), targets.Options{
		Rand:    a.Rand,
		Logger:  a.Logger,
		Metrics: a.Metrics,
	})
}

// OpenResultStore prefers PostgreSQL when a database URL is configured (or
// DATABASE_URL is set) and falls back to the results file.
func (a *App) OpenResultStore(ctx context.Context) (results.Store, error) {
	databaseURL := a.Config.Storage.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	if databaseURL != "" {
		store, err := results.NewPGStore(ctx, databaseURL)
		if err == nil {
			a.Logger.Debug("using PostgreSQL result store")
			return store, nil
		}
		a.Logger.Warn("PostgreSQL result store unavailable, falling back to file",
			logging.Error(err),
			logging.Path(a.Config.Storage.ResultsFile),
		)
	}

	return results.NewFileStore(a.Config.Storage.ResultsFile)
}

// Finish writes the metrics textfile when one is configured.
func (a *App) Finish() {
	path := a.Config.MetricsFile
	if path == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(path); err != nil {
		a.Logger.Warn("failed to write metrics", logging.Path(path), logging.Error(err))
		return
	}
	a.Logger.Debug("metrics written", logging.Path(path))
}

// ExitCode maps err to the process exit status a tool reports.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, validation.ErrInvalidConfig):
		return ExitInvalidConfig
	case graph.IsMalformed(err):
		return ExitMalformed
	case graph.IsNotFound(err):
		return ExitNotFound
	default:
		return ExitFailure
	}
}
