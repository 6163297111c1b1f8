// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pii

import "strings"

// ColumnContext names the CSV column a detection came from
type ColumnContext struct {
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"`
}

// Detection represents one masked occurrence
type Detection struct {
	Type          Type           `json:"type" yaml:"type"`
	OriginalValue string         `json:"-" yaml:"-"`
	MaskedValue   string         `json:"masked_value" yaml:"masked_value"`
	Line          int            `json:"line" yaml:"line"`     // 1-based
	Column        int            `json:"column" yaml:"column"` // 0-based byte offset within the line
	Confidence    float64        `json:"confidence" yaml:"confidence"`
	ColumnContext *ColumnContext `json:"column_context,omitempty" yaml:"column_context,omitempty"`
}

// Clear wipes the original value once the caller no longer needs it
func (d *Detection) Clear() {
	d.OriginalValue = ""
}

// MaskedResult is the return contract of every masking entry point
type MaskedResult struct {
	MaskedText     string      `json:"masked_text" yaml:"masked_text"`
	Detections     []Detection `json:"detections" yaml:"detections"`
	MaskingApplied bool        `json:"masking_applied" yaml:"masking_applied"`
}

// NewMaskedResult builds a result keeping MaskingApplied consistent with detections.
func NewMaskedResult(text string, detections []Detection) MaskedResult {
	if detections == nil {
		detections = []Detection{}
	}
	return MaskedResult{
		MaskedText:     text,
		Detections:     detections,
		MaskingApplied: len(detections) > 0,
	}
}

// Unmasked wraps text that passed through without changes.
func Unmasked(text string) MaskedResult {
	return NewMaskedResult(text, nil)
}

// Replacement is span bookkeeping for offset-based substitution.
// Start and End are byte offsets, End exclusive.
type Replacement struct {
	Start    int
	End      int
	Original string
	Masked   string
}

// Overlaps reports whether the half-open intervals intersect.
func (r Replacement) Overlaps(start, end int) bool {
	return start < r.End && r.Start < end
}

// LineColumn converts a byte offset into a 1-based line and 0-based column.
func LineColumn(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		column = offset - i - 1
	}
	return line, column
}
