package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the concealment engine
type Registry struct {
	// Graph Metrics
	GraphNodesTotal prometheus.Gauge
	GraphEdgesTotal prometheus.Gauge

	// DICE Metrics
	DiceRoundsTotal        prometheus.Counter
	DiceEdgesRemovedTotal  prometheus.Counter
	DiceEdgesAddedTotal    prometheus.Counter
	DiceInternalEdgesFound prometheus.Histogram

	// Noise Metrics
	NoisePairsVisitedTotal prometheus.Counter
	NoiseEdgesToggledTotal *prometheus.CounterVec

	// Concealment Metrics
	ConcealmentScore *prometheus.HistogramVec
	TrialsTotal      *prometheus.CounterVec

	// Sampler Metrics
	TargetSetsSampledTotal *prometheus.CounterVec
	CommunitiesQualified   *prometheus.CounterVec

	// Operation Metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}
