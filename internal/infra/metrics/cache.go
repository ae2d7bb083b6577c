package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(cacheWritesTotal) }

var cacheWritesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "decision_cache_writes_total",
		Help: "Best-effort decision cache writes, labeled by result.",
	},
	[]string{"result"}, // 'ok', 'error'
)

func IncCacheWrite(result string) {
	cacheWritesTotal.WithLabelValues(norm(result)).Inc()
}
