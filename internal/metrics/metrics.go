package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// AnalysesTotal tracks completed analyses by status and risk tier
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total analyses by status and risk level",
		},
		[]string{"status", "risk_level"},
	)

	// AnalysisDuration tracks end-to-end analysis latency in seconds
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// EntriesAnalyzed tracks how many entries each analysis consumed
	EntriesAnalyzed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_entries_analyzed",
			Help:    "Number of entries consumed per analysis",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// CrisisDetections tracks analyses that raised the crisis flag
	CrisisDetections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_crisis_detections_total",
			Help: "Total analyses with crisis_detected set",
		},
	)
)

// Oracle Metrics
var (
	// ClassifierFailures tracks model failures absorbed by the oracle's
	// fail-safe-to-negative default
	ClassifierFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_classifier_failures_total",
			Help: "Total classifier failures defaulted to negative sentiment",
		},
	)
)

// Entry Store Metrics
var (
	// EntryStoreFetches tracks entry store fetches by status
	EntryStoreFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entry_store_fetches_total",
			Help: "Total entry store fetches by status",
		},
		[]string{"status"},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)
