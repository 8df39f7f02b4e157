package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// EvaluationPasses counts completed evaluation passes.
	EvaluationPasses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maintenance_evaluation_passes_total",
			Help: "Total number of completed schedule evaluation passes",
		},
	)

	// SchedulesChecked counts schedules evaluated across all passes.
	SchedulesChecked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maintenance_schedules_checked_total",
			Help: "Total number of schedules evaluated",
		},
	)

	// CyclesFired counts fired cycles by trigger condition (time, mileage, hours).
	CyclesFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_cycles_fired_total",
			Help: "Total number of maintenance cycles that generated a work order",
		},
		[]string{"condition"},
	)

	// CyclesDuplicate counts cycles skipped because the ledger already had them.
	CyclesDuplicate = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maintenance_cycles_duplicate_total",
			Help: "Total number of cycles skipped as already fired",
		},
	)

	// ScheduleErrors counts schedules whose evaluation errored in a pass.
	ScheduleErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maintenance_schedule_errors_total",
			Help: "Total number of schedule evaluations that ended in an error",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration, RequestTotal,
			EvaluationPasses, SchedulesChecked, CyclesFired, CyclesDuplicate, ScheduleErrors,
		)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /schedules/123 -> /schedules/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordPass records the aggregate outcome of one evaluation pass.
func RecordPass(checked, duplicates, errored int) {
	EvaluationPasses.Inc()
	SchedulesChecked.Add(float64(checked))
	CyclesDuplicate.Add(float64(duplicates))
	ScheduleErrors.Add(float64(errored))
}

// RecordFiredCycle records one fired cycle for the given trigger condition.
func RecordFiredCycle(condition string) {
	CyclesFired.WithLabelValues(condition).Inc()
}
