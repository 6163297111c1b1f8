// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package csv masks CSV text column by column, classifying each column by
// its header name.
package csv

import (
	"strings"
	"time"

	"ctxcopy/internal/config"
	"ctxcopy/internal/observability"
	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors/replacement"
)

// columnConfidence is reported for every cell of a masked column
const columnConfidence = 1.0

// Masker implements column-aware CSV masking
type Masker struct {
	metrics  *performance.Metrics
	observer *observability.StandardObserver
}

// NewMasker creates a CSV masker recording on metrics (nil uses performance.Default)
func NewMasker(metrics *performance.Metrics) *Masker {
	if metrics == nil {
		metrics = performance.Default
	}
	return &Masker{metrics: metrics}
}

// GetComponentName returns the component name for observability
func (m *Masker) GetComponentName() string {
	return "csv_masker"
}

// SetObserver sets the observability component
func (m *Masker) SetObserver(observer *observability.StandardObserver) {
	m.observer = observer
}

type maskedColumn struct {
	name string
	typ  pii.Type
}

// MaskCsvText masks every non-empty cell of the sensitive columns in text.
// When headersLine is empty the first line of text is the header row and is
// copied through verbatim; otherwise every line of text is data.
func (m *Masker) MaskCsvText(text string, cfg *config.MaskingConfig, headersLine string) pii.MaskedResult {
	started := time.Now()
	defer m.metrics.ObserveOperation("csv", started)

	if cfg == nil || !cfg.Enabled || text == "" {
		return pii.Unmasked(text)
	}
	finish := m.observer.StartTiming(m.GetComponentName(), "mask_csv", "")

	lines := strings.Split(text, "\n")
	firstData := 0
	if headersLine == "" {
		headersLine = strings.TrimSuffix(lines[0], "\r")
		firstData = 1
	}

	columns := make(map[int]maskedColumn)
	for i, header := range ParseHeaders(headersLine) {
		if ShouldMaskColumn(header, cfg) {
			columns[i] = maskedColumn{name: header, typ: DetectColumnType(header)}
		}
	}
	if len(columns) == 0 {
		finish(true, map[string]interface{}{"masked_columns": 0})
		return pii.Unmasked(text)
	}

	var detections []pii.Detection
	for lineIdx := firstData; lineIdx < len(lines); lineIdx++ {
		line := lines[lineIdx]
		body := strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(body) == "" {
			continue
		}

		cells := SplitLine(body)
		changed := false
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = cell.Raw
			column, ok := columns[i]
			if !ok || strings.TrimSpace(cell.Value) == "" {
				continue
			}

			masked := replacement.Generate(cell.Value, column.typ, cfg.Strategy)
			rendered[i] = cell.render(masked)
			changed = true

			detections = append(detections, pii.Detection{
				Type:          column.typ,
				OriginalValue: cell.Value,
				MaskedValue:   masked,
				Line:          lineIdx + 1,
				Column:        cell.Offset,
				Confidence:    columnConfidence,
				ColumnContext: &pii.ColumnContext{Name: column.name, Index: i},
			})
			m.metrics.RecordDetection(string(column.typ))
		}

		if changed {
			lines[lineIdx] = strings.Join(rendered, ",") + line[len(body):]
		}
	}

	finish(true, map[string]interface{}{
		"masked_columns": len(columns),
		"detections":     len(detections),
	})
	return pii.NewMaskedResult(strings.Join(lines, "\n"), detections)
}
