// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ScorecardRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_requests_total",
			Help: "Search collaborator requests by backend and outcome",
		},
		[]string{"backend", "status"},
	)

	ScorecardRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scorecard_request_duration_seconds",
			Help:    "Latency of search collaborator requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	ScorecardCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scorecard_cache_lookups_total",
			Help: "Page cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	SearchBroadening = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_broadening_total",
			Help: "Searches by the tier that completed them",
		},
		[]string{"tier"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results_count",
			Help:    "Distinct institutions returned per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200, 300},
		},
	)

	DocumentScoreFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_score_fallbacks_total",
			Help: "Document scoring failures degraded to the neutral score",
		},
		[]string{"reason"},
	)
)
