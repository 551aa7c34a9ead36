package prometheus

import (
	"time"

	"tradeflow-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Tenant context metrics
	TenantContextMissingCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Workflow metrics
	WorkflowOperationsCounter prometheus.CounterVec
	InvalidTransitionsCounter prometheus.CounterVec
	StatusCascadesCounter     prometheus.CounterVec

	initialized bool
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	TenantContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Total number of requests without tenant context",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	WorkflowOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_workflow_operations_total",
			Help: "Total number of workflow operations by entity and operation",
		},
		[]string{"entity", "operation"},
	)

	InvalidTransitionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_invalid_transitions_total",
			Help: "Total number of rejected status transitions",
		},
		[]string{"entity"},
	)

	StatusCascadesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_status_cascades_total",
			Help: "Total number of automatic deal status cascades",
		},
		[]string{"trigger"},
	)

	initialized = true
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordOperation increments the counter for workflow operations
func RecordOperation(entity, operation string) {
	if !initialized {
		return
	}
	WorkflowOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordInvalidTransition increments the rejected-transition counter
func RecordInvalidTransition(entity string) {
	if !initialized {
		return
	}
	InvalidTransitionsCounter.WithLabelValues(entity).Inc()
}

// RecordCascade increments the cascade counter for a trigger entity
func RecordCascade(trigger string) {
	if !initialized {
		return
	}
	StatusCascadesCounter.WithLabelValues(trigger).Inc()
}

// RecordAuthError increments the auth error counter with a reason
func RecordAuthError(reason string) {
	if !initialized {
		return
	}
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordTenantContextMissing increments the missing-tenant-context counter
func RecordTenantContextMissing() {
	if !initialized {
		return
	}
	TenantContextMissingCounter.Inc()
}

// RecordAuthAttempt increments the auth attempt counter
func RecordAuthAttempt() {
	if !initialized {
		return
	}
	AuthAttemptsCounter.Inc()
}
