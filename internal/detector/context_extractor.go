// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"

	ctxanalysis "ctxcopy/internal/context"
)

// ContextInfo stores the text immediately around a match
type ContextInfo struct {
	// Text before and after the match, bounded by ContextChars
	BeforeText string
	AfterText  string

	// Line containing the match
	FullLine string
}

// ContextExtractor extracts context around a specific match
type ContextExtractor struct {
	// Number of characters before and after the match to consider
	ContextChars int
}

// NewContextExtractor creates a new context extractor with default settings
func NewContextExtractor() *ContextExtractor {
	return &ContextExtractor{
		ContextChars: 50,
	}
}

// WithContextChars sets the number of context characters
func (ce *ContextExtractor) WithContextChars(chars int) *ContextExtractor {
	ce.ContextChars = chars
	return ce
}

// Extract returns the context of text[start:end].
func (ce *ContextExtractor) Extract(text string, start, end int) ContextInfo {
	start = min(max(start, 0), len(text))
	end = min(max(end, start), len(text))

	info := ContextInfo{
		BeforeText: text[max(0, start-ce.ContextChars):start],
		AfterText:  text[end:min(len(text), end+ce.ContextChars)],
	}

	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	info.FullLine = text[lineStart:lineEnd]

	return info
}

// Structure classifies the structure immediately around text[start:end].
func (ce *ContextExtractor) Structure(text string, start, end int) ctxanalysis.Structure {
	info := ce.Extract(text, start, end)
	return ctxanalysis.DetectStructureType(info.BeforeText, info.AfterText)
}
