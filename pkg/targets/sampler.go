// Package targets draws candidate target sets from the communities of a partition.
package targets

import (
	"fmt"

	"github.com/dd0wney/cluso-conceal/pkg/graph"
	"github.com/dd0wney/cluso-conceal/pkg/logging"
	"github.com/dd0wney/cluso-conceal/pkg/metrics"
	"github.com/dd0wney/cluso-conceal/pkg/sampling"
	"github.com/dd0wney/cluso-conceal/pkg/validation"
)

// Policy decides whether a community is large enough to sample a target set from.
type Policy string

const (
	// PolicySimple qualifies communities strictly larger than the target size
	PolicySimple Policy = "simple"
	// PolicyBounded qualifies communities of size in [size, 4*size)
	PolicyBounded Policy = "bounded"
)

// Qualifies applies the policy to a community of communitySize nodes.
func (p Policy) Qualifies(communitySize, targetSize int) bool {
	switch p {
	case PolicySimple:
		return communitySize > targetSize
	case PolicyBounded:
		return targetSize <= communitySize && communitySize < 4*targetSize
	}
	return false
}

// Config controls which sets are drawn.
type Config struct {
	TargetSizes         []int
	SamplesPerCommunity int
	Policy              Policy
}

// DefaultConfig draws two sets of each size from 2 to 10 with the simple policy.
func DefaultConfig() Config {
	return Config{
		TargetSizes:         []int{2, 4, 6, 8, 10},
		SamplesPerCommunity: 2,
		Policy:              PolicySimple,
	}
}

// Validate rejects empty or non-positive sizes, non-positive sample counts
// and unknown policies.
func (c Config) Validate() error {
	cv := validation.NewConfigValidator("SamplerConfig").
		NotEmpty("TargetSizes", len(c.TargetSizes)).
		Positive("SamplesPerCommunity", c.SamplesPerCommunity).
		OneOf("Policy", string(c.Policy), []string{string(PolicySimple), string(PolicyBounded)}).
		Custom("TargetSizes", func() error {
			for _, size := range c.TargetSizes {
				if size < 1 {
					return fmt.Errorf("size %d must be positive", size)
				}
			}
			return nil
		})
	return cv.Validate()
}

// Options carries the collaborators a Sampler is built with.
type Options struct {
	Rand    sampling.Source
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Sampler produces target sets.
type Sampler struct {
	config  Config
	rand    sampling.Source
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewSampler validates config and builds a Sampler.
func NewSampler(config Config, opts Options) (*Sampler, error) {
	if err := validation.ValidateConfig(config); err != nil {
		return nil, err
	}
	src := opts.Rand
	if src == nil {
		src = sampling.New(0)
	}
	return &Sampler{
		config:  config,
		rand:    src,
		logger:  logging.OrNop(opts.Logger).With(logging.Component("targets")),
		metrics: opts.Metrics,
	}, nil
}

// Sample draws SamplesPerCommunity independent sets of each target size from
// every qualifying community of g under p. Output is ordered by size (config
// order), then community label, then sample index.
func (s *Sampler) Sample(g *graph.Graph, p graph.Partition) ([]graph.TargetSet, error) {
	timer := logging.StartTimer(s.logger, "target sets sampled", logging.String("policy", string(s.config.Policy)))

	comms, err := p.CommunitiesOf(g)
	if err != nil {
		s.metrics.RecordOperation("sample_targets", err, timer.EndError(err))
		return nil, err
	}
	labels := p.Labels()

	sets := make([]graph.TargetSet, 0)
	qualified := 0
	for _, size := range s.config.TargetSizes {
		for _, label := range labels {
			members := comms[label]
			if !s.config.Policy.Qualifies(len(members), size) {
				continue
			}
			qualified++
			for i := 0; i < s.config.SamplesPerCommunity; i++ {
				sets = append(sets, graph.TargetSet(sampling.Sample(s.rand, members, size)))
			}
			s.logger.Debug("community qualified",
				logging.Int("label", label),
				logging.Int("size", len(members)),
				logging.Int("target_size", size),
			)
		}
	}

	elapsed := timer.End(logging.Int("qualified", qualified), logging.Count(len(sets)))
	s.metrics.RecordSample(string(s.config.Policy), qualified, len(sets))
	s.metrics.RecordOperation("sample_targets", nil, elapsed)

	return sets, nil
}
