// Package dice implements the "disconnect internally, connect externally"
// concealment heuristic of Waniek et al. (2018).
package dice

import (
	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
	"github.com/dd0wney/cluso-conceal/pkg/metrics"
	"github.com/dd0wney/cluso-conceal/pkg/sampling"
	"github.com/dd0wney/cluso-conceal/pkg/validation"
)

const (
	// DefaultBudget is the number of edge modifications per round
	DefaultBudget = 4
	// DefaultDisconnects is the share of the budget spent removing internal edges
	DefaultDisconnects = 2
)

// Config bounds a single DICE round.
type Config struct {
	Budget      int
	Disconnects int
}

// DefaultConfig returns a budget of four edges, two of them disconnects.
func DefaultConfig() Config {
	return Config{Budget: DefaultBudget, Disconnects: DefaultDisconnects}
}

// Validate rejects negative budgets and more disconnects than budget.
func (c Config) Validate() error {
	return validation.NewConfigValidator("DiceConfig").
		NonNegative("Budget", c.Budget).
		NonNegative("Disconnects", c.Disconnects).
		MaxInt("Disconnects", c.Disconnects, c.Budget).
		Validate()
}

// Connects is the budget left for the connect phase.
func (c Config) Connects() int {
	return c.Budget - c.Disconnects
}

// Options carries the collaborators a Heuristic is built with.
type Options struct {
	Rand    sampling.Source
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Heuristic runs DICE rounds against a graph.
type Heuristic struct {
	config  Config
	rand    sampling.Source
	logger  logging.Logger
	metrics *metrics.Registry
}

// Report describes the edges one round changed.
type Report struct {
	InternalEdges int
	Removed       []graph.Edge
	Added         []graph.Edge
}

// NewHeuristic validates config and builds a Heuristic.
func NewHeuristic(config Config, opts Options) (*Heuristic, error) {
	if err := validation.ValidateConfig(config); err != nil {
		return nil, err
	}
	src := opts.Rand
	if src == nil {
		src = sampling.New(0)
	}
	return &Heuristic{
		config:  config,
		rand:    src,
		logger:  logging.OrNop(opts.Logger).With(logging.Component("dice")),
		metrics: opts.Metrics,
	}, nil
}

// Config returns the round budget.
func (h *Heuristic) Config() Config {
	return h.config
}

// Execute runs one DICE round on g in place. Targets must be nodes of g;
// the node set is never changed. An empty target set is a no-op.
func (h *Heuristic) Execute(g *graph.Graph, targets graph.TargetSet) (*Report, error) {
	targets = graph.NewTargetSet(targets...)
	if len(targets) == 0 {
		h.logger.Debug("no targets, dice round skipped")
		return &Report{}, nil
	}

	timer := logging.StartTimer(h.logger, "dice round complete", logging.Targets(targets))
	if err := targets.Validate("ExecuteDice", g); err != nil {
		h.metrics.RecordOperation("execute_dice", err, timer.EndError(err))
		return nil, err
	}
	inTargets := targets.Set()

	// Disconnect internally
	internal := make([]graph.Edge, 0)
	for _, e := range g.Edges() {
		_, okU := inTargets[e.U]
		_, okV := inTargets[e.V]
		if okU && okV {
			internal = append(internal, e)
		}
	}
	if len(internal) > 0 {
		h.logger.Debug("internal edges found", logging.Count(len(internal)))
	}

	report := &Report{InternalEdges: len(internal)}
	for _, e := range sampling.Sample(h.rand, internal, h.config.Disconnects) {
		g.RemoveEdge(e.U, e.V)
		report.Removed = append(report.Removed, e)
		h.logger.Debug("removing edge", logging.Edge(e.U, e.V))
	}

	// Connect externally
	nontargets := make([]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		if _, ok := inTargets[n]; !ok {
			nontargets = append(nontargets, n)
		}
	}

	k := min(h.config.Connects(), len(targets), len(nontargets))
	fromTargets := sampling.Sample(h.rand, []string(targets), k)
	toOutside := sampling.Sample(h.rand, nontargets, k)

	for i := 0; i < k; i++ {
		u, v := fromTargets[i], toOutside[i]
		added, err := g.AddEdge(u, v)
		if err != nil {
			// targets and non-targets are disjoint, so this is unreachable
			return nil, err
		}
		if added {
			report.Added = append(report.Added, graph.NewEdge(u, v))
			h.logger.Debug("adding edge", logging.Edge(u, v))
		}
	}

	elapsed := timer.End(
		logging.Int("removed", len(report.Removed)),
		logging.Int("added", len(report.Added)),
	)
	h.metrics.RecordDiceRound(report.InternalEdges, len(report.Removed), len(report.Added))
	h.metrics.RecordGraph(g.NodeCount(), g.EdgeCount())
	h.metrics.RecordOperation("execute_dice", nil, elapsed)

	return report, nil
}

// ExecuteRounds applies Execute the given number of times, stopping at the
// first error. It returns one report per completed round.
func (h *Heuristic) ExecuteRounds(g *graph.Graph, targets graph.TargetSet, rounds int) ([]*Report, error) {
	if err := validation.NewConfigValidator("DiceRounds").MinInt("Rounds", rounds, 1).Validate(); err != nil {
		return nil, err
	}
	reports := make([]*Report, 0, rounds)
	for i := 0; i < rounds; i++ {
		r, err := h.Execute(g, targets)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
