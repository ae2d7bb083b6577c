package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(optimizationOutcomesTotal, candidateSetSize) }

var optimizationOutcomesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "optimization_outcomes_total",
		Help: "Optimization run outcomes: assigned, order_missing, no_candidates.",
	},
	[]string{"outcome"},
)

// The optimizer scores the full shipment table on every run; this histogram
// makes that cost visible.
var candidateSetSize = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "optimization_candidate_set_size",
		Help:    "Number of candidate shipments scored per optimization run.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	},
)

func IncOptimizationOutcome(outcome string) {
	optimizationOutcomesTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObserveCandidateSetSize(n int) {
	candidateSetSize.Observe(float64(n))
}
