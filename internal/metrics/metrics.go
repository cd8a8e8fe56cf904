// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "erp_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})

	AttendanceMarked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_attendance_records_marked_total",
		Help: "Attendance records written, by status.",
	}, []string{"status"})

	ReportFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_report_store_fallbacks_total",
		Help: "Reads that degraded to an empty result because the store failed.",
	}, []string{"report"})

	PostingsDecided = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_placement_postings_decided_total",
		Help: "Placement postings approved or rejected.",
	}, []string{"decision"})

	PlacementApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_placement_applications_total",
		Help: "Placement application attempts by outcome.",
	}, []string{"outcome"})

	RequestsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_application_requests_total",
		Help: "Application requests submitted, by type.",
	}, []string{"type"})

	SeedRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_org_seed_runs_total",
		Help: "Completed org-structure seed runs.",
	})
)
