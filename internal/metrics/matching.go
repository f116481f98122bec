package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching and workflow Prometheus metrics.
var (
	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "ranking_duration_seconds",
			Help:      "Time spent ranking the catalog against keywords",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"source"},
	)

	CatalogSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "ranking_catalog_jobs",
			Help:      "Number of catalog jobs considered per ranking",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	MatchedJobs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobmatch",
			Name:      "ranking_matched_jobs",
			Help:      "Number of jobs at or above the threshold per ranking",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"source"},
	)

	RecommendationOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "recommendation_outcomes_total",
			Help:      "Recommendation requests by keyword source and outcome",
		},
		[]string{"source", "outcome"}, // outcome: ranked / no_signal / error
	)

	ApplicationTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "application_transitions_total",
			Help:      "Application status transitions",
		},
		[]string{"from", "to", "result"}, // result: ok / rejected
	)

	SavedJobTogglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "saved_job_changes_total",
			Help:      "Saved-job save/unsave calls",
		},
		[]string{"action", "status"},
	)

	AlertsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobmatch",
			Name:      "alerts_generated_total",
			Help:      "Job alerts appended to user feeds",
		},
	)
)

var matchingMetricsRegistered bool

// RegisterMatchingMetrics registers matching and workflow metrics. Must be called once from main.
func RegisterMatchingMetrics() {
	if matchingMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(CatalogSize)
	prometheus.MustRegister(MatchedJobs)
	prometheus.MustRegister(RecommendationOutcomesTotal)
	prometheus.MustRegister(ApplicationTransitionsTotal)
	prometheus.MustRegister(SavedJobTogglesTotal)
	prometheus.MustRegister(AlertsGeneratedTotal)
	matchingMetricsRegistered = true
}
