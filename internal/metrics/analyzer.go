package metrics

import "github.com/prometheus/client_golang/prometheus"

// CV analyzer Prometheus metrics.
var (
	AnalyzerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "analyzer_requests_total",
			Help:      "Total number of CV analysis requests",
		},
		[]string{"provider", "status"},
	)

	AnalyzerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "analyzer_request_duration_seconds",
			Help:      "CV analysis request duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		},
		[]string{"provider"},
	)

	AnalyzerErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "analyzer_errors_total",
			Help:      "Total CV analysis errors",
		},
		[]string{"provider", "error_type"},
	)

	AnalyzerKeywords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "analyzer_keywords",
			Help:      "Number of keywords extracted per analyzed CV",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"provider"},
	)

	AnalyzerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "analyzer_cache_total",
			Help:      "CV analysis cache lookups",
		},
		[]string{"result"}, // hit / miss
	)
)

var analyzerMetricsRegistered bool

// RegisterAnalyzerMetrics registers Prometheus analyzer metrics. Must be called once from main.
func RegisterAnalyzerMetrics() {
	if analyzerMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalyzerRequestsTotal)
	prometheus.MustRegister(AnalyzerRequestDuration)
	prometheus.MustRegister(AnalyzerErrorsTotal)
	prometheus.MustRegister(AnalyzerKeywords)
	prometheus.MustRegister(AnalyzerCacheTotal)
	analyzerMetricsRegistered = true
}
