// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cdata masks the payload of XML CDATA sections. Output always has
// exactly the length of the input so surrounding markup offsets stay valid.
package cdata

import (
	"strings"
	"time"

	"ctxcopy/internal/config"
	ctxanalysis "ctxcopy/internal/context"
	"ctxcopy/internal/detector"
	"ctxcopy/internal/observability"
	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
)

// Masker implements length-preserving masking of CDATA content
type Masker struct {
	detector *detector.Detector
	metrics  *performance.Metrics
	observer *observability.StandardObserver

	// replace performs the substitution
	replace func(content string, replacements []pii.Replacement) string
}

// NewMasker creates a CDATA masker. A nil detector uses the process-wide pattern library.
func NewMasker(d *detector.Detector, metrics *performance.Metrics) *Masker {
	if metrics == nil {
		metrics = performance.Default
	}
	if d == nil {
		d = detector.New(nil, metrics)
	}
	return &Masker{
		detector: d,
		metrics:  metrics,
		replace:  redactors.ApplyReplacements,
	}
}

// GetComponentName returns the component name for observability
func (m *Masker) GetComponentName() string {
	return "cdata_masker"
}

// SetObserver sets the observability component
func (m *Masker) SetObserver(observer *observability.StandardObserver) {
	m.observer = observer
}

// MaskCdataContent replaces every accepted match with asterisks of the same
// length, whatever the configured strategy. Detection positions are local to
// content. If the masked text would differ in length the original content is
// returned with no detections.
func (m *Masker) MaskCdataContent(content string, cfg *config.MaskingConfig) pii.MaskedResult {
	started := time.Now()
	defer m.metrics.ObserveOperation("cdata", started)
	finish := m.observer.StartTiming(m.GetComponentName(), "mask_cdata", "")

	candidates := m.detector.Scan(content, cfg, detector.Options{Structure: ctxanalysis.StructureXML})
	if len(candidates) == 0 {
		finish(true, map[string]interface{}{"content_length": len(content), "detections": 0})
		return pii.Unmasked(content)
	}

	replacements := make([]pii.Replacement, 0, len(candidates))
	for _, c := range candidates {
		replacements = append(replacements, pii.Replacement{
			Start:    c.Start,
			End:      c.End,
			Original: c.Value,
			Masked:   strings.Repeat("*", c.End-c.Start),
		})
	}

	masked := m.replace(content, replacements)
	if len(masked) != len(content) {
		merr := redactors.NewMaskingError(redactors.ErrorLengthInvariant,
			"masked CDATA length differs from input, returning content unmasked", m.GetComponentName(), nil)
		fields := merr.Fields()
		fields["input_length"] = len(content)
		fields["output_length"] = len(masked)
		m.observer.Warn(m.GetComponentName(), merr.Message, fields)
		m.metrics.CDATAAborts.Inc()
		finish(false, fields)
		return pii.Unmasked(content)
	}

	detections := make([]pii.Detection, 0, len(candidates))
	for i, c := range candidates {
		line, column := pii.LineColumn(content, c.Start)
		detections = append(detections, pii.Detection{
			Type:          c.Type,
			OriginalValue: c.Value,
			MaskedValue:   replacements[i].Masked,
			Line:          line,
			Column:        column,
			Confidence:    c.Confidence,
		})
		m.metrics.RecordDetection(string(c.Type))
	}

	finish(true, map[string]interface{}{"content_length": len(content), "detections": len(detections)})
	return pii.NewMaskedResult(masked, detections)
}
