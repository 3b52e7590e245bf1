package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "conceal_graph_nodes",
			Help: "Number of nodes in the most recently loaded or produced graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "conceal_graph_edges",
			Help: "Number of edges in the most recently loaded or produced graph",
		},
	)
}

func (r *Registry) initDiceMetrics() {
	r.DiceRoundsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "conceal_dice_rounds_total",
			Help: "Total number of DICE rounds executed",
		},
	)

	r.DiceEdgesRemovedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "conceal_dice_edges_removed_total",
			Help: "Total number of internal edges removed by DICE",
		},
	)

	r.DiceEdgesAddedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "conceal_dice_edges_added_total",
			Help: "Total number of external edges added by DICE",
		},
	)

	r.DiceInternalEdgesFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conceal_dice_internal_edges",
			Help:    "Internal edges among the targets at the start of a DICE round",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)
}

func (r *Registry) initNoiseMetrics() {
	r.NoisePairsVisitedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "conceal_noise_pairs_visited_total",
			Help: "Total number of node pairs examined by edge noise injection",
		},
	)

	r.NoiseEdgesToggledTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "conceal_noise_edges_toggled_total",
			Help: "Total number of node pairs whose edge state was flipped",
		},
		[]string{"direction"}, // added, removed
	)
}

func (r *Registry) initScoringMetrics() {
	r.ConcealmentScore = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conceal_concealment_score",
			Help:    "Observed concealment measures",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"measure"}, // mu1, mu2, combined
	)

	r.TrialsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "conceal_trials_total",
			Help: "Total number of evaluated target sets by detection outcome",
		},
		[]string{"detected"},
	)
}

func (r *Registry) initSamplerMetrics() {
	r.TargetSetsSampledTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "conceal_target_sets_sampled_total",
			Help: "Total number of target sets produced by the sampler",
		},
		[]string{"policy"},
	)

	r.CommunitiesQualified = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "conceal_communities_qualified_total",
			Help: "Community and target size combinations that passed the size policy",
		},
		[]string{"policy"},
	)
}

func (r *Registry) initOperationMetrics() {
	r.OperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "conceal_operations_total",
			Help: "Total number of engine operations",
		},
		[]string{"operation", "status"},
	)

	r.OperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conceal_operation_duration_seconds",
			Help:    "Engine operation duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0, 60.0},
		},
		[]string{"operation"},
	)
}
