// Package noise perturbs graphs with symmetric random edge toggling, the
// building block of randomized smoothing for detection robustness.
package noise

import (
	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
	"github.com/dd0wney/cluso-conceal/pkg/metrics"
	"github.com/dd0wney/cluso-conceal/pkg/sampling"
	"github.com/dd0wney/cluso-conceal/pkg/validation"
)

// Options carries the collaborators an Injector is built with.
type Options struct {
	Rand    sampling.Source
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Injector applies edge noise.
type Injector struct {
	rand    sampling.Source
	logger  logging.Logger
	metrics *metrics.Registry
}

// Stats summarises one noise pass.
type Stats struct {
	PairsVisited int
	EdgesAdded   int
	EdgesRemoved int
}

// NewInjector creates an Injector. A nil Rand falls back to a clock-seeded source.
func NewInjector(opts Options) *Injector {
	src := opts.Rand
	if src == nil {
		src = sampling.New(0)
	}
	return &Injector{
		rand:    src,
		logger:  logging.OrNop(opts.Logger).With(logging.Component("noise")),
		metrics: opts.Metrics,
	}
}

// AddEdgeNoise returns a copy of g in which every unordered pair of distinct
// nodes keeps its edge state with probability beta and flips otherwise.
// g is never modified.
func (inj *Injector) AddEdgeNoise(g *graph.Graph, beta float64) (*graph.Graph, error) {
	noisy, _, err := inj.AddEdgeNoiseStats(g, beta)
	return noisy, err
}

// AddEdgeNoiseStats is AddEdgeNoise that also reports what changed.
func (inj *Injector) AddEdgeNoiseStats(g *graph.Graph, beta float64) (*graph.Graph, Stats, error) {
	timer := logging.StartTimer(inj.logger, "edge noise applied", logging.Beta(beta))
	if err := validation.Probability("beta", beta); err != nil {
		inj.metrics.RecordOperation("add_edge_noise", err, timer.EndError(err))
		return nil, Stats{}, err
	}

	noisy := g.Clone()
	nodes := g.Nodes()
	var stats Stats

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			stats.PairsVisited++
			if inj.rand.Float64() <= beta {
				continue
			}
			u, v := nodes[i], nodes[j]
			if g.HasEdge(u, v) {
				noisy.RemoveEdge(u, v)
				stats.EdgesRemoved++
			} else {
				// u != v, so AddEdge cannot fail
				noisy.AddEdge(u, v)
				stats.EdgesAdded++
			}
		}
	}

	elapsed := timer.End(
		logging.Int("pairs", stats.PairsVisited),
		logging.Int("added", stats.EdgesAdded),
		logging.Int("removed", stats.EdgesRemoved),
	)
	inj.metrics.RecordNoise(stats.PairsVisited, stats.EdgesAdded, stats.EdgesRemoved)
	inj.metrics.RecordGraph(noisy.NodeCount(), noisy.EdgeCount())
	inj.metrics.RecordOperation("add_edge_noise", nil, elapsed)

	return noisy, stats, nil
}
