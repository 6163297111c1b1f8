// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package performance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the masking counters on a private registry so embedding
// hosts never collide with their own default registry.
type Metrics struct {
	registry *prometheus.Registry

	Operations         *prometheus.CounterVec
	OperationLatency   *prometheus.HistogramVec
	Detections         *prometheus.CounterVec
	Suppressed         *prometheus.CounterVec
	CDATAAborts        prometheus.Counter
	PatternCompiles    *prometheus.CounterVec
	InvalidCustomRules prometheus.Counter
}

// latency buckets in milliseconds
var latencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000}

// NewMetrics creates a metric set bound to a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctxcopy_masking_operations_total",
				Help: "Masking entry point invocations",
			},
			[]string{"entry_point"},
		),
		OperationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ctxcopy_masking_latency_ms",
				Help:    "Masking latency in milliseconds",
				Buckets: latencyBuckets,
			},
			[]string{"entry_point"},
		),
		Detections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctxcopy_detections_total",
				Help: "Accepted detections by PII type",
			},
			[]string{"type"},
		),
		Suppressed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctxcopy_candidates_suppressed_total",
				Help: "Pattern matches rejected before masking, by reason",
			},
			[]string{"reason"},
		),
		CDATAAborts: factory.NewCounter(prometheus.CounterOpts{
			Name: "ctxcopy_cdata_length_aborts_total",
			Help: "CDATA masking passes discarded because the length invariant failed",
		}),
		PatternCompiles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctxcopy_pattern_compilations_total",
				Help: "Lazy pattern compilations by type",
			},
			[]string{"type"},
		),
		InvalidCustomRules: factory.NewCounter(prometheus.CounterOpts{
			Name: "ctxcopy_invalid_custom_patterns_total",
			Help: "Custom patterns that failed to compile",
		}),
	}
}

// Default is the process-wide metric set
var Default = NewMetrics()

// Registry exposes the underlying registry for exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation records one masking call
func (m *Metrics) ObserveOperation(entryPoint string, started time.Time) {
	m.Operations.WithLabelValues(entryPoint).Inc()
	m.OperationLatency.WithLabelValues(entryPoint).Observe(float64(time.Since(started).Microseconds()) / 1000.0)
}

// RecordDetection counts an accepted detection
func (m *Metrics) RecordDetection(piiType string) {
	m.Detections.WithLabelValues(piiType).Inc()
}

// RecordSuppressed counts a rejected candidate
func (m *Metrics) RecordSuppressed(reason string) {
	m.Suppressed.WithLabelValues(reason).Inc()
}

// Summary renders counters (not histograms) as sorted "name{labels} value" lines.
func (m *Metrics) Summary() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}
