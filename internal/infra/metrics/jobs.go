package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(jobsProcessedTotal, jobDuration) }

var jobsProcessedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "optimization_jobs_processed_total",
		Help: "Total number of optimization jobs processed, labeled by status.",
	},
	[]string{"status"}, // 'completed', 'failed'
)

var jobDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "optimization_job_duration_seconds",
		Help:    "Wall-clock duration of a single optimization job.",
		Buckets: prometheus.DefBuckets,
	},
)

func IncJob(status string) {
	jobsProcessedTotal.WithLabelValues(norm(status)).Inc()
}

func ObserveJobDuration(seconds float64) {
	jobDuration.Observe(seconds)
}
