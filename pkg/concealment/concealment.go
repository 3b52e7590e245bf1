// Package concealment scores how well a target set hides from a community
// partition, using the two measures of Waniek et al. (2018).
package concealment

import (
	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
	"github.com/dd0wney/cluso-conceal/pkg/metrics"
	"github.com/dd0wney/cluso-conceal/pkg/validation"
)

// DefaultAlpha weights both measures equally.
const DefaultAlpha = 0.5

// Options carries the collaborators a Scorer is built with.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Scorer computes concealment measures. All methods are read-only and deterministic.
//
// Every target must be a node of the graph as well as a key of the partition.
// A labeled target with no remaining edges is not a node once the graph has
// been written as an edge list and read back, so scoring it is a lookup
// failure rather than a zero-degree node.
type Scorer struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Evaluation is the outcome of scoring one target set.
type Evaluation struct {
	Mu1         float64
	Mu2         float64
	Alpha       float64
	Concealment float64
	Detected    bool
}

// NewScorer creates a Scorer.
func NewScorer(opts Options) *Scorer {
	return &Scorer{
		logger:  logging.OrNop(opts.Logger).With(logging.Component("concealment")),
		metrics: opts.Metrics,
	}
}

// targetLabels counts targets per community label.
func targetLabels(op string, g *graph.Graph, p graph.Partition, targets graph.TargetSet) (map[int]int, error) {
	targets = graph.NewTargetSet(targets...)
	if err := targets.Validate(op, g); err != nil {
		return nil, err
	}
	freq := make(map[int]int)
	for _, t := range targets {
		label, err := p.Label(t)
		if err != nil {
			return nil, graph.NotFound(op, t)
		}
		freq[label]++
	}
	return freq, nil
}

// Concealment1 measures how spread the targets are across communities:
// (distinct - 1) / (max(communities - 1, 1) * max(maxFreq, 1)).
func (s *Scorer) Concealment1(g *graph.Graph, p graph.Partition, targets graph.TargetSet) (float64, error) {
	freq, err := targetLabels("Concealment1", g, p, targets)
	if err != nil {
		return 0, err
	}

	maxFreq := 0
	for _, n := range freq {
		maxFreq = max(maxFreq, n)
	}

	denom := float64(max(p.CommunityCount()-1, 1) * max(maxFreq, 1))
	return float64(len(freq)-1) / denom, nil
}

// Concealment2 measures the non-target mass preserved in the communities the
// targets touch, relative to all non-targets.
func (s *Scorer) Concealment2(g *graph.Graph, p graph.Partition, targets graph.TargetSet) (float64, error) {
	freq, err := targetLabels("Concealment2", g, p, targets)
	if err != nil {
		return 0, err
	}
	comms, err := p.CommunitiesOf(g)
	if err != nil {
		return 0, err
	}

	numerator := 0
	for label, members := range comms {
		if n, ok := freq[label]; ok {
			numerator += len(members) - n
		}
	}

	targetCount := len(graph.NewTargetSet(targets...))
	denom := float64(max(g.NodeCount()-targetCount, 1))
	return float64(numerator) / denom, nil
}

// Combined returns alpha*Concealment1 + (1-alpha)*Concealment2.
func (s *Scorer) Combined(g *graph.Graph, p graph.Partition, targets graph.TargetSet, alpha float64) (float64, error) {
	if err := validation.Probability("alpha", alpha); err != nil {
		return 0, err
	}
	mu1, err := s.Concealment1(g, p, targets)
	if err != nil {
		return 0, err
	}
	mu2, err := s.Concealment2(g, p, targets)
	if err != nil {
		return 0, err
	}
	return alpha*mu1 + (1-alpha)*mu2, nil
}

// Detected reports whether a single community contains every target.
func (s *Scorer) Detected(g *graph.Graph, p graph.Partition, targets graph.TargetSet) (bool, error) {
	freq, err := targetLabels("Detected", g, p, targets)
	if err != nil {
		return false, err
	}
	return len(freq) == 1, nil
}

// Evaluate scores a trial: both measures, their combination and the detection flag.
func (s *Scorer) Evaluate(g *graph.Graph, p graph.Partition, targets graph.TargetSet, alpha float64) (*Evaluation, error) {
	timer := logging.StartTimer(s.logger, "targets evaluated", logging.Targets(targets), logging.Alpha(alpha))

	eval, err := s.evaluate(g, p, targets, alpha)
	if err != nil {
		s.metrics.RecordOperation("evaluate", err, timer.EndError(err))
		return nil, err
	}

	elapsed := timer.End(
		logging.Float64("concealment", eval.Concealment),
		logging.Bool("detected", eval.Detected),
	)
	s.metrics.RecordConcealment("mu1", eval.Mu1)
	s.metrics.RecordConcealment("mu2", eval.Mu2)
	s.metrics.RecordConcealment("combined", eval.Concealment)
	s.metrics.RecordTrial(eval.Detected)
	s.metrics.RecordOperation("evaluate", nil, elapsed)

	return eval, nil
}

func (s *Scorer) evaluate(g *graph.Graph, p graph.Partition, targets graph.TargetSet, alpha float64) (*Evaluation, error) {
	if err := validation.Probability("alpha", alpha); err != nil {
		return nil, err
	}
	mu1, err := s.Concealment1(g, p, targets)
	if err != nil {
		return nil, err
	}
	mu2, err := s.Concealment2(g, p, targets)
	if err != nil {
		return nil, err
	}
	detected, err := s.Detected(g, p, targets)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		Mu1:         mu1,
		Mu2:         mu2,
		Alpha:       alpha,
		Concealment: alpha*mu1 + (1-alpha)*mu2,
		Detected:    detected,
	}, nil
}
