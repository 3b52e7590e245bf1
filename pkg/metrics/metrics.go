package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initGraphMetrics()
	r.initDiceMetrics()
	r.initNoiseMetrics()
	r.initScoringMetrics()
	r.initSamplerMetrics()
	r.initOperationMetrics()

	return r
}

// WriteTextfile writes every metric in text exposition format, suitable for
// the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// RecordGraph records the size of a graph
func (r *Registry) RecordGraph(nodes, edges int) {
	if r == nil {
		return
	}
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordDiceRound records one DICE round
func (r *Registry) RecordDiceRound(internal, removed, added int) {
	if r == nil {
		return
	}
	r.DiceRoundsTotal.Inc()
	r.DiceInternalEdgesFound.Observe(float64(internal))
	r.DiceEdgesRemovedTotal.Add(float64(removed))
	r.DiceEdgesAddedTotal.Add(float64(added))
}

// RecordNoise records one noise injection pass
func (r *Registry) RecordNoise(pairs, added, removed int) {
	if r == nil {
		return
	}
	r.NoisePairsVisitedTotal.Add(float64(pairs))
	r.NoiseEdgesToggledTotal.WithLabelValues("added").Add(float64(added))
	r.NoiseEdgesToggledTotal.WithLabelValues("removed").Add(float64(removed))
}

// RecordConcealment observes a concealment measure
func (r *Registry) RecordConcealment(measure string, value float64) {
	if r == nil {
		return
	}
	r.ConcealmentScore.WithLabelValues(measure).Observe(value)
}

// RecordTrial counts an evaluated target set
func (r *Registry) RecordTrial(detected bool) {
	if r == nil {
		return
	}
	label := "false"
	if detected {
		label = "true"
	}
	r.TrialsTotal.WithLabelValues(label).Inc()
}

// RecordSample records sampler output for a policy
func (r *Registry) RecordSample(policy string, qualified, sets int) {
	if r == nil {
		return
	}
	r.CommunitiesQualified.WithLabelValues(policy).Add(float64(qualified))
	r.TargetSetsSampledTotal.WithLabelValues(policy).Add(float64(sets))
}

// RecordOperation records an engine operation with its duration
func (r *Registry) RecordOperation(operation string, err error, duration time.Duration) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
	r.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
