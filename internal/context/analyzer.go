// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"regexp"
	"strings"
)

// Structure is the document shape surrounding a match
type Structure string

const (
	StructureXML       Structure = "xml"
	StructureJSON      Structure = "json"
	StructureCSV       Structure = "csv"
	StructurePlainText Structure = "plain_text"
)

// sniffLength bounds how much of a document is sampled for structure detection
const sniffLength = 2000

// StructureDetector identifies document structure and format
type StructureDetector struct {
	patterns map[Structure]*regexp.Regexp
}

// NewStructureDetector creates a document structure detector
func NewStructureDetector() *StructureDetector {
	patterns := map[Structure]*regexp.Regexp{
		StructureCSV:  regexp.MustCompile(`^[^,]*,[^,]*(,.*)?$`),
		StructureXML:  regexp.MustCompile(`<\?xml|<[a-zA-Z][^>]*>`),
		StructureJSON: regexp.MustCompile(`^[\{\[]\s*(["\{\[\]\}]|-?\d|true|false|null|$)`),
	}

	return &StructureDetector{patterns: patterns}
}

// DetectDocument identifies the structure of a whole document. The file path,
// when given, takes precedence through its extension.
func (sd *StructureDetector) DetectDocument(content, filePath string) Structure {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".csv"):
		return StructureCSV
	case strings.HasSuffix(lowerPath, ".json"):
		return StructureJSON
	case strings.HasSuffix(lowerPath, ".xml"):
		return StructureXML
	}

	sample := content
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
	}
	trimmed := strings.TrimSpace(sample)
	if trimmed == "" {
		return StructurePlainText
	}

	switch trimmed[0] {
	case '<':
		if sd.patterns[StructureXML].MatchString(trimmed) {
			return StructureXML
		}
	case '{', '[':
		if sd.patterns[StructureJSON].MatchString(trimmed) {
			return StructureJSON
		}
	}

	if sd.looksLikeCSV(trimmed) {
		return StructureCSV
	}
	return StructurePlainText
}

// looksLikeCSV requires at least two lines sharing the same non-zero comma count.
func (sd *StructureDetector) looksLikeCSV(sample string) bool {
	lines := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	// a truncated last line is unreliable
	if len(sample) >= sniffLength && len(lines) > 2 {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return false
	}

	commas := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		if !sd.patterns[StructureCSV].MatchString(line) {
			return false
		}
		n := strings.Count(line, ",")
		if commas == -1 {
			commas = n
		} else if n != commas {
			return false
		}
	}
	return commas > 0
}

var jsonKeyBefore = regexp.MustCompile(`"[^"]+"\s*:\s*"?$`)

// DetectStructureType classifies the structure immediately around a match.
func DetectStructureType(contextBefore, contextAfter string) Structure {
	if strings.HasSuffix(strings.TrimRight(contextBefore, " \t"), ">") &&
		strings.HasPrefix(strings.TrimLeft(contextAfter, " \t"), "</") {
		return StructureXML
	}
	if jsonKeyBefore.MatchString(contextBefore) {
		return StructureJSON
	}
	if strings.HasSuffix(contextBefore, ",") || strings.HasPrefix(contextAfter, ",") {
		return StructureCSV
	}
	return StructurePlainText
}
