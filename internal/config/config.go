// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers .env, an optional YAML file and HRM_ environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/okian/hrm/pkg/metrics"
)

// metricName matches Prometheus namespaces and label names.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log records to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080". Empty disables HTTP.
	Addr string `koanf:"addr"`

	// Menu enables the interactive console menu on stdin/stdout.
	Menu bool `koanf:"menu"`

	// SeedFile is bulk-loaded on start when set.
	SeedFile string `koanf:"seed_file"`

	// ReportFile is the default destination of the competence report.
	ReportFile string `koanf:"report_file"`

	// WorkbookFile is the default destination of the xlsx export.
	WorkbookFile string `koanf:"workbook_file"`

	// ManagerToken is the bulk-load marker for manager lines.
	ManagerToken string `koanf:"manager_token"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MetricsBuckets are the latency histogram buckets in milliseconds.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         "",
		Menu:         true,
		ReportFile:   "hrm_report.txt",
		WorkbookFile: "hrm_report.xlsx",
		ManagerToken: "manager",

		MetricsEnabled:   true,
		MetricsNamespace: "hrm",
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if !c.Menu && c.Addr == "" {
		return ErrNoFrontEnd
	}
	if c.ManagerToken == "" {
		return ErrEmptyManagerToken
	}
	if !metricName.MatchString(c.MetricsNamespace) {
		return fmt.Errorf("%w: namespace %q", ErrInvalidMetrics, c.MetricsNamespace)
	}
	for name := range c.MetricsLabels {
		if !metricName.MatchString(name) || strings.HasPrefix(name, "__") || slices.Contains(metrics.VariableLabels(), name) {
			return fmt.Errorf("%w: label %q", ErrInvalidMetrics, name)
		}
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: buckets must increase", ErrInvalidMetrics)
		}
	}
	return nil
}
