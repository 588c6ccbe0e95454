package metrics

import "github.com/prometheus/client_golang/prometheus"

// Summary generation Prometheus metrics.
var (
	SummaryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "instabrief",
			Name:      "summary_requests_total",
			Help:      "Total number of summary provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	SummaryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "instabrief",
			Name:      "summary_request_duration_seconds",
			Help:      "Summary provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	SummaryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "instabrief",
			Name:      "summary_errors_total",
			Help:      "Total summary provider errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	SummaryFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "instabrief",
			Name:      "summary_fallbacks_total",
			Help:      "Abstractive requests served by the extractive fallback",
		},
	)

	SummaryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "instabrief",
			Name:      "summary_cache_total",
			Help:      "Summary cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var summaryMetricsRegistered bool

// RegisterSummaryMetrics registers Prometheus summary metrics. Must be called once from main.
func RegisterSummaryMetrics() {
	if summaryMetricsRegistered {
		return
	}
	prometheus.MustRegister(SummaryRequestsTotal)
	prometheus.MustRegister(SummaryRequestDuration)
	prometheus.MustRegister(SummaryErrorsTotal)
	prometheus.MustRegister(SummaryFallbacksTotal)
	prometheus.MustRegister(SummaryCacheTotal)
	summaryMetricsRegistered = true
}
