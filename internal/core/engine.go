// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the detector and the specialized maskers into the
// masking entry points used by the CLI and embedding hosts.
package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"ctxcopy/internal/config"
	ctxanalysis "ctxcopy/internal/context"
	"ctxcopy/internal/detector"
	"ctxcopy/internal/observability"
	"ctxcopy/internal/patterns"
	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
	"ctxcopy/internal/redactors/cdata"
	"ctxcopy/internal/redactors/csv"
	"ctxcopy/internal/redactors/replacement"
)

// Format selects the masking entry point for a document
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user supplied name to a Format. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatText, FormatJSON, FormatXML, FormatCSV:
		return f, nil
	case "plain", "plain_text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown document format %q (expected auto, text, json, xml or csv)", s)
	}
}

func formatForStructure(s ctxanalysis.Structure) Format {
	switch s {
	case ctxanalysis.StructureJSON:
		return FormatJSON
	case ctxanalysis.StructureXML:
		return FormatXML
	case ctxanalysis.StructureCSV:
		return FormatCSV
	default:
		return FormatText
	}
}

var cdataSection = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// Options configure an Engine. Zero values use the process-wide defaults.
type Options struct {
	Library  *patterns.Library
	Metrics  *performance.Metrics
	Observer *observability.StandardObserver
	Guard    *ctxanalysis.Guard
	Now      func() time.Time
}

var _ observability.Observable = (*Engine)(nil)

// Engine is safe for concurrent use
type Engine struct {
	detector   *detector.Detector
	cdata      *cdata.Masker
	csv        *csv.Masker
	structures *ctxanalysis.StructureDetector
	metrics    *performance.Metrics
	observer   *observability.StandardObserver
}

// NewEngine builds the masking pipeline
func NewEngine(opts Options) *Engine {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = performance.Default
	}

	d := detector.New(opts.Library, metrics)
	if opts.Guard != nil {
		d.WithGuard(*opts.Guard)
	}
	if opts.Now != nil {
		d.WithClock(opts.Now)
	}

	e := &Engine{
		detector:   d,
		cdata:      cdata.NewMasker(d, metrics),
		csv:        csv.NewMasker(metrics),
		structures: ctxanalysis.NewStructureDetector(),
		metrics:    metrics,
	}
	e.SetObserver(opts.Observer)
	return e
}

// GetComponentName returns the component name for observability
func (e *Engine) GetComponentName() string {
	return "masking_engine"
}

// SetObserver sets the observer on the engine and every masker it owns
func (e *Engine) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
	for _, c := range []observability.Observable{e.detector, e.cdata, e.csv} {
		c.SetObserver(observer)
	}
}

// Metrics returns the metric set the engine records on
func (e *Engine) Metrics() *performance.Metrics {
	return e.metrics
}

// resolve applies the preset. It reports false when masking is off.
func resolve(cfg *config.MaskingConfig) (*config.MaskingConfig, bool) {
	if cfg == nil || !cfg.Enabled {
		return nil, false
	}
	return config.ApplyPreset(cfg), true
}

// MaskText masks any text with the configured strategy. The structure used
// for the adaptive threshold is classified around every match.
func (e *Engine) MaskText(text string, cfg *config.MaskingConfig) pii.MaskedResult {
	started := time.Now()
	defer e.metrics.ObserveOperation("text", started)

	resolved, ok := resolve(cfg)
	if !ok {
		return pii.Unmasked(text)
	}
	return e.maskSpans(text, resolved, "", nil).MaskedResult
}

// MaskJSON masks a JSON document. Keys are protected by the field-name guard.
func (e *Engine) MaskJSON(text string, cfg *config.MaskingConfig) pii.MaskedResult {
	started := time.Now()
	defer e.metrics.ObserveOperation("json", started)

	resolved, ok := resolve(cfg)
	if !ok {
		return pii.Unmasked(text)
	}
	return e.maskSpans(text, resolved, ctxanalysis.StructureJSON, nil).MaskedResult
}

// MaskCDATA masks the payload of a single CDATA section. The output has the
// length of content and detection positions are local to it.
func (e *Engine) MaskCDATA(content string, cfg *config.MaskingConfig) pii.MaskedResult {
	resolved, ok := resolve(cfg)
	if !ok {
		return pii.Unmasked(content)
	}
	return e.cdata.MaskCdataContent(content, resolved)
}

// MaskCSV masks CSV text by column. See csv.Masker.MaskCsvText for headersLine.
func (e *Engine) MaskCSV(text string, cfg *config.MaskingConfig, headersLine string) pii.MaskedResult {
	resolved, ok := resolve(cfg)
	if !ok {
		return pii.Unmasked(text)
	}
	return e.csv.MaskCsvText(text, resolved, headersLine)
}

// MaskXML masks an XML document. CDATA payloads go through the length
// preserving CDATA masker; everything else is masked like text. Every
// detection is reported in document coordinates.
func (e *Engine) MaskXML(doc string, cfg *config.MaskingConfig) pii.MaskedResult {
	started := time.Now()
	defer e.metrics.ObserveOperation("xml", started)

	resolved, ok := resolve(cfg)
	if !ok {
		return pii.Unmasked(doc)
	}

	sections := cdataSection.FindAllStringSubmatchIndex(doc, -1)
	if len(sections) == 0 {
		return e.maskSpans(doc, resolved, ctxanalysis.StructureXML, nil).MaskedResult
	}

	// CDATA payloads are blanked for the markup pass so no text match can
	// reach into them, while every offset stays valid.
	blanked := []byte(doc)
	var cdataSpans []pii.Replacement
	var cdataDetections []pii.Detection
	for _, loc := range sections {
		start, end := loc[2], loc[3]
		for i := start; i < end; i++ {
			if blanked[i] != '\n' {
				blanked[i] = ' '
			}
		}

		content := doc[start:end]
		result := e.cdata.MaskCdataContent(content, resolved)
		if !result.MaskingApplied {
			continue
		}
		cdataSpans = append(cdataSpans, pii.Replacement{
			Start:    start,
			End:      end,
			Original: content,
			Masked:   result.MaskedText,
		})
		startLine, startColumn := pii.LineColumn(doc, start)
		for _, det := range result.Detections {
			if det.Line == 1 {
				det.Column += startColumn
			}
			det.Line += startLine - 1
			cdataDetections = append(cdataDetections, det)
		}
	}

	masked := e.maskSpans(string(blanked), resolved, ctxanalysis.StructureXML, sections)
	replacements := append(cdataSpans, masked.replacements...)
	detections := append(masked.Detections, cdataDetections...)
	sort.SliceStable(detections, func(i, j int) bool {
		if detections[i].Line != detections[j].Line {
			return detections[i].Line < detections[j].Line
		}
		return detections[i].Column < detections[j].Column
	})

	return pii.NewMaskedResult(redactors.ApplyReplacements(doc, replacements), detections)
}

// MaskDocument dispatches on format. FormatAuto sniffs the structure of the
// first 2000 bytes. CSV documents treat their first line as the header row.
func (e *Engine) MaskDocument(text string, cfg *config.MaskingConfig, format Format) pii.MaskedResult {
	return e.maskDocument(text, cfg, format, "")
}

func (e *Engine) maskDocument(text string, cfg *config.MaskingConfig, format Format, filePath string) pii.MaskedResult {
	if format == FormatAuto || format == "" {
		format = formatForStructure(e.structures.DetectDocument(text, filePath))
		e.observer.Debug(e.GetComponentName(), "document format detected", map[string]interface{}{
			"format": string(format),
		})
	}

	switch format {
	case FormatJSON:
		return e.MaskJSON(text, cfg)
	case FormatXML:
		return e.MaskXML(text, cfg)
	case FormatCSV:
		return e.MaskCSV(text, cfg, "")
	default:
		return e.MaskText(text, cfg)
	}
}

// spanResult carries the replacements behind a result so MaskXML can merge them
type spanResult struct {
	pii.MaskedResult
	replacements []pii.Replacement
}

// maskSpans runs the detector and substitutes every candidate. Candidates
// overlapping an excluded span are dropped.
func (e *Engine) maskSpans(text string, cfg *config.MaskingConfig, structure ctxanalysis.Structure, excluded [][]int) spanResult {
	finish := e.observer.StartTiming(e.GetComponentName(), "mask", "")

	candidates := e.detector.Scan(text, cfg, detector.Options{Structure: structure})
	replacements := make([]pii.Replacement, 0, len(candidates))
	detections := make([]pii.Detection, 0, len(candidates))
	for _, c := range candidates {
		if insideAny(excluded, c.Start, c.End) {
			continue
		}

		masked := c.Replacement
		if masked == "" {
			masked = replacement.Generate(c.Value, c.Type, cfg.Strategy)
		}
		replacements = append(replacements, pii.Replacement{
			Start:    c.Start,
			End:      c.End,
			Original: c.Value,
			Masked:   masked,
		})

		line, column := pii.LineColumn(text, c.Start)
		detections = append(detections, pii.Detection{
			Type:          c.Type,
			OriginalValue: c.Value,
			MaskedValue:   masked,
			Line:          line,
			Column:        column,
			Confidence:    c.Confidence,
		})
		e.metrics.RecordDetection(string(c.Type))
	}

	finish(true, map[string]interface{}{
		"content_length": len(text),
		"detections":     len(detections),
		"structure":      string(structure),
	})
	return spanResult{
		MaskedResult: pii.NewMaskedResult(redactors.ApplyReplacements(text, replacements), detections),
		replacements: replacements,
	}
}

// insideAny reports whether [start,end) overlaps the whole match of any section
func insideAny(sections [][]int, start, end int) bool {
	for _, loc := range sections {
		if start < loc[1] && loc[0] < end {
			return true
		}
	}
	return false
}
