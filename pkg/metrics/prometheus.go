package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation results used as the "result" label.
const (
	ResultOK          = "ok"
	ResultDuplicate   = "duplicate_name"
	ResultNotFound    = "not_found"
	ResultNotAManager = "not_a_manager"
	ResultUnreadable  = "unreadable"
	ResultError       = "error"
)

// Metric subsystems.
const (
	directorySubsystem = "directory"
	httpSubsystem      = "http"
)

// VariableLabels returns the label names collectors set per observation.
// Constant labels must not reuse them.
func VariableLabels() []string {
	return []string{"operation", "result", "outcome", "format", "endpoint", "method", "status_code"}
}

// Bulk-load line outcomes used as the "outcome" label.
const (
	LineAdded    = "added"
	LineSkipped  = "skipped"
	LineRejected = "rejected"
)

// Manager manages all Prometheus metrics for the HRM service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Directory state
	recordsTotal  prometheus.Gauge
	managersTotal prometheus.Gauge
	operations    *prometheus.CounterVec

	// Flat-file exchange
	bulkLoads     *prometheus.CounterVec
	bulkLines     *prometheus.CounterVec
	reportWrites  *prometheus.CounterVec
	reportLatency *prometheus.HistogramVec

	// HTTP front-end
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hrm",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.recordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "records_total",
		Help:        "Number of employee records, managers included",
		ConstLabels: labels,
	})

	m.managersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "managers_total",
		Help:        "Number of records with manager capability",
		ConstLabels: labels,
	})

	m.operations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "operations_total",
		Help:        "Directory mutations by operation and result",
		ConstLabels: labels,
	}, []string{"operation", "result"})

	m.bulkLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "bulk_loads_total",
		Help:        "Bulk loads by result",
		ConstLabels: labels,
	}, []string{"result"})

	m.bulkLines = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "bulk_lines_total",
		Help:        "Bulk-load lines by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.reportWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "report_writes_total",
		Help:        "Report writes by format and result",
		ConstLabels: labels,
	}, []string{"format", "result"})

	m.reportLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   directorySubsystem,
		Name:        "report_write_duration_milliseconds",
		Help:        "Report write duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"format"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   httpSubsystem,
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   httpSubsystem,
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// UpdateRecordsTotal sets the record gauge.
func (m *Manager) UpdateRecordsTotal(count int) {
	if m.enabled {
		m.recordsTotal.Set(float64(count))
	}
}

// UpdateManagersTotal sets the manager gauge.
func (m *Manager) UpdateManagersTotal(count int) {
	if m.enabled {
		m.managersTotal.Set(float64(count))
	}
}

// RecordOperation counts a directory operation outcome.
func (m *Manager) RecordOperation(operation, result string) {
	if m.enabled {
		m.operations.WithLabelValues(operation, result).Inc()
	}
}

// RecordBulkLoad counts a finished or failed bulk load.
func (m *Manager) RecordBulkLoad(result string) {
	if m.enabled {
		m.bulkLoads.WithLabelValues(result).Inc()
	}
}

// RecordBulkLine counts one bulk-load line outcome.
func (m *Manager) RecordBulkLine(outcome string) {
	if m.enabled {
		m.bulkLines.WithLabelValues(outcome).Inc()
	}
}

// RecordReportWrite counts a report write and observes its duration.
func (m *Manager) RecordReportWrite(format string, ok bool, durationMs float64) {
	if !m.enabled {
		return
	}
	result := ResultOK
	if !ok {
		result = ResultError
	}
	m.reportWrites.WithLabelValues(format, result).Inc()
	m.reportLatency.WithLabelValues(format).Observe(durationMs)
}

// RecordHTTPRequest counts an HTTP request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(statusCode)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// Directory Metrics

// UpdateRecordsTotal sets the number of records.
func UpdateRecordsTotal(count int) {
	globalManager.UpdateRecordsTotal(count)
}

// UpdateManagersTotal sets the number of managers.
func UpdateManagersTotal(count int) {
	globalManager.UpdateManagersTotal(count)
}

// RecordOperation counts a directory operation outcome.
func RecordOperation(operation, result string) {
	globalManager.RecordOperation(operation, result)
}

// File Exchange Metrics

// RecordBulkLoad counts a bulk load by result.
func RecordBulkLoad(result string) {
	globalManager.RecordBulkLoad(result)
}

// RecordBulkLine counts a bulk-load line by outcome.
func RecordBulkLine(outcome string) {
	globalManager.RecordBulkLine(outcome)
}

// RecordReportWrite records a report write.
func RecordReportWrite(format string, ok bool, durationMs float64) {
	globalManager.RecordReportWrite(format, ok, durationMs)
}

// HTTP Metrics

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// Configure replaces the global manager with one built from opts on a fresh
// registry and returns that registry. Call it at startup, before anything
// records metrics or serves GetRegistry.
func Configure(opts ...Option) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	opts = append(opts, WithPrometheusRegistry(registry))
	globalManager = NewManager(opts...)
	customRegistry = registry
	return registry
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
