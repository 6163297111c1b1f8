// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detector runs the candidate pipeline shared by every masking path:
// enabled patterns, the field-name guard, format validation and confidence
// scoring against the adaptive threshold.
package detector

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"ctxcopy/internal/config"
	ctxanalysis "ctxcopy/internal/context"
	"ctxcopy/internal/observability"
	"ctxcopy/internal/patterns"
	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
	"ctxcopy/internal/validators"
)

// Suppression reasons recorded in metrics
const (
	SuppressedOverlap       = "overlap"
	SuppressedFieldName     = "field_name"
	SuppressedValidation    = "validation"
	SuppressedNotBirthDate  = "not_birth_date"
	SuppressedLowConfidence = "low_confidence"
)

// Candidate is a match that passed every gate. Start and End are byte
// offsets into the scanned text, End exclusive.
type Candidate struct {
	Type       pii.Type
	Start      int
	End        int
	Value      string
	Confidence float64

	// Rule and Replacement are set for custom patterns only
	Rule        string
	Replacement string
}

// Options adjust a single scan
type Options struct {
	// Structure forces the structure used for the adaptive threshold.
	// Empty means classify the surroundings of every match.
	Structure ctxanalysis.Structure
}

// Detector finds maskable spans. Safe for concurrent use once configured.
type Detector struct {
	library   *patterns.Library
	guard     ctxanalysis.Guard
	extractor *ContextExtractor
	metrics   *performance.Metrics
	observer  *observability.StandardObserver
	now       func() time.Time
}

// New creates a detector over library (nil uses the process-wide library)
// recording on metrics (nil uses performance.Default).
func New(library *patterns.Library, metrics *performance.Metrics) *Detector {
	if library == nil {
		library = patterns.Default()
	}
	if metrics == nil {
		metrics = performance.Default
	}
	return &Detector{
		library:   library,
		guard:     ctxanalysis.DefaultGuard(),
		extractor: NewContextExtractor(),
		metrics:   metrics,
		now:       time.Now,
	}
}

// WithGuard replaces the field-name guard windows
func (d *Detector) WithGuard(g ctxanalysis.Guard) *Detector {
	d.guard = g
	return d
}

// WithClock sets the clock used for birth-date plausibility
func (d *Detector) WithClock(now func() time.Time) *Detector {
	d.now = now
	return d
}

// GetComponentName returns the component name for observability
func (d *Detector) GetComponentName() string {
	return "detector"
}

// SetObserver sets the observability component
func (d *Detector) SetObserver(observer *observability.StandardObserver) {
	d.observer = observer
}

// Scan returns the accepted candidates in text, in document order. Built-in
// patterns run in canonical type order, then custom patterns; a match that
// overlaps an earlier accepted candidate is dropped.
func (d *Detector) Scan(text string, cfg *config.MaskingConfig, opts Options) []Candidate {
	if cfg == nil || !cfg.Enabled || text == "" {
		return nil
	}

	finish := d.observer.StartTiming(d.GetComponentName(), "scan", "")
	now := d.now()

	var accepted []Candidate
	for _, compiled := range d.library.EnabledInOrder(cfg.Types) {
		accepted = d.scanPattern(text, compiled.Type, compiled.Regexp, config.CustomPattern{}, cfg, opts, now, accepted)
	}

	for _, rule := range cfg.ActiveCustomPatterns() {
		re, err := d.library.CompileCustom(rule.Pattern)
		if err != nil {
			merr := redactors.NewMaskingError(redactors.ErrorInvalidPattern,
				fmt.Sprintf("custom pattern %q disabled", rule.Name), d.GetComponentName(), err)
			d.observer.Warn(d.GetComponentName(), merr.Error(), merr.Fields())
			continue
		}
		accepted = d.scanPattern(text, pii.Custom, re, rule, cfg, opts, now, accepted)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})

	finish(true, map[string]interface{}{
		"content_length": len(text),
		"candidates":     len(accepted),
	})
	return accepted
}

func (d *Detector) scanPattern(text string, t pii.Type, re *regexp.Regexp, rule config.CustomPattern,
	cfg *config.MaskingConfig, opts Options, now time.Time, accepted []Candidate) []Candidate {

	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		// label-led patterns capture the value in group 1
		if len(loc) >= 4 && loc[2] >= 0 {
			start, end = loc[2], loc[3]
		}
		if start == end {
			continue
		}
		if overlaps(accepted, start, end) {
			d.metrics.RecordSuppressed(SuppressedOverlap)
			continue
		}
		if d.guard.IsInsideFieldName(text, start, end-start) {
			d.metrics.RecordSuppressed(SuppressedFieldName)
			continue
		}

		value := text[start:end]
		result := validators.Check(t, value, now)
		if !result.IsValid {
			d.metrics.RecordSuppressed(SuppressedValidation)
			continue
		}
		if t == pii.DateOfBirth && !ctxanalysis.ShouldMaskAsDateOfBirth(text, start, value, now) {
			d.metrics.RecordSuppressed(SuppressedNotBirthDate)
			continue
		}

		confidence := ctxanalysis.CalculateMaskingConfidence(text, start, value, t)
		if result.Confidence < confidence {
			confidence = result.Confidence
		}

		structure := opts.Structure
		if structure == "" {
			structure = d.extractor.Structure(text, start, end)
		}
		threshold := ctxanalysis.GetAdaptiveThreshold(cfg.ConfidenceThreshold, structure, t, cfg.Mode)
		if confidence < threshold {
			d.metrics.RecordSuppressed(SuppressedLowConfidence)
			d.observer.Debug(d.GetComponentName(), "candidate below threshold", map[string]interface{}{
				"type":       string(t),
				"confidence": confidence,
				"threshold":  threshold,
				"structure":  string(structure),
			})
			continue
		}

		accepted = append(accepted, Candidate{
			Type:        t,
			Start:       start,
			End:         end,
			Value:       value,
			Confidence:  confidence,
			Rule:        rule.Name,
			Replacement: rule.Replacement,
		})
	}
	return accepted
}

func overlaps(accepted []Candidate, start, end int) bool {
	for _, c := range accepted {
		if start < c.End && c.Start < end {
			return true
		}
	}
	return false
}
