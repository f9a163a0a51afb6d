package metrics

import "github.com/prometheus/client_golang/prometheus"

// GetFeature request building metrics.
var (
	CombineTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "getfeature_combine_total",
			Help:      "Total GetFeature combine requests by outcome, cache hits included",
		},
		[]string{"outcome"}, // "combined" / "empty" / "error"
	)

	QueryBlocks = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "getfeature_query_blocks",
			Help:      "Query blocks per combined GetFeature document",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	RequestCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "getfeature_cache_total",
			Help:      "GetFeature document cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var requestMetricsRegistered bool

// RegisterRequestMetrics registers the GetFeature metrics. Must be called once from main.
func RegisterRequestMetrics() {
	if requestMetricsRegistered {
		return
	}
	prometheus.MustRegister(CombineTotal)
	prometheus.MustRegister(QueryBlocks)
	prometheus.MustRegister(RequestCacheTotal)
	requestMetricsRegistered = true
}

// CombineRecorder reports combine outcomes to Prometheus.
type CombineRecorder struct {
	total  *prometheus.CounterVec
	blocks prometheus.Observer
}

// NewCombineRecorder creates a recorder over the given collectors.
func NewCombineRecorder(total *prometheus.CounterVec, blocks prometheus.Observer) *CombineRecorder {
	return &CombineRecorder{total: total, blocks: blocks}
}

// ObserveCombine counts the outcome and, for produced documents, the query block count.
func (r *CombineRecorder) ObserveCombine(outcome string, queryBlocks int) {
	r.total.WithLabelValues(outcome).Inc()
	if queryBlocks > 0 {
		r.blocks.Observe(float64(queryBlocks))
	}
}
