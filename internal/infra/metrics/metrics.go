// Package metrics exposes Prometheus instrumentation for tool calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ToolMetrics holds the per-tool instrumentation.
type ToolMetrics struct {
	// CallsTotal counts tool invocations by tool name and result status
	// (success, warning, error, or failed for calls that did not produce a
	// result at all).
	CallsTotal *prometheus.CounterVec

	// CallDuration tracks tool call latency by tool name.
	CallDuration *prometheus.HistogramVec
}

// NewToolMetrics registers the tool metrics on reg and returns them.
// Passing a fresh registry keeps tests independent of the default one.
func NewToolMetrics(reg prometheus.Registerer) *ToolMetrics {
	factory := promauto.With(reg)

	return &ToolMetrics{
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snack_tool_calls_total",
				Help: "Total tool invocations by tool name and result status.",
			},
			[]string{"tool", "status"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "snack_tool_call_duration_seconds",
				Help:    "Tool call duration in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"tool"},
		),
	}
}

// RecordCall records one tool invocation with its result status and duration.
func (m *ToolMetrics) RecordCall(tool, status string, duration time.Duration) {
	m.CallsTotal.WithLabelValues(tool, status).Inc()
	m.CallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}
