package porter

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// Copier cache statistics, kept on a private set so they never collide
// with the host application's default metrics.
var (
	stats       = metrics.NewSet()
	cacheHits   = stats.NewCounter("porter_copier_cache_hits_total")
	cacheMisses = stats.NewCounter("porter_copier_cache_misses_total")
	_           = stats.NewGauge("porter_copier_cache_size", func() float64 {
		return float64(copiers.Size())
	})
)

// WriteMetrics writes the copier cache statistics to w in Prometheus text
// exposition format.
func WriteMetrics(w io.Writer) {
	stats.WritePrometheus(w)
}
