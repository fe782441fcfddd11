package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// analysesTotal counts GenerateSuggestions calls by augmentation outcome.
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writewatch_analyses_total",
		Help: "Total analyses by augmentation outcome",
	}, []string{"augmentation"})

	// analysisDuration tracks end-to-end analysis latency.
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "writewatch_analysis_duration_seconds",
		Help:    "Analysis duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16), // 0.5ms to ~16s
	})

	// suggestionsEmitted counts returned suggestions by type.
	suggestionsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writewatch_suggestions_total",
		Help: "Suggestions returned to callers by type",
	}, []string{"type"})

	// augmentOutcomes counts augmentation attempts by result.
	augmentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writewatch_augmentation_total",
		Help: "Augmentation calls by result",
	}, []string{"result"})

	// similarityEstimates counts similarity estimates by method.
	similarityEstimates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writewatch_similarity_estimates_total",
		Help: "Similarity estimates by method",
	}, []string{"method"})
)
