// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	encsv "encoding/csv"
	"strings"
)

// Cell is one field of a CSV line. Raw is the exact source text including
// quotes and padding; Value is the unquoted content.
type Cell struct {
	Raw    string
	Value  string
	Offset int
	Quoted bool
}

// SplitLine splits one line on commas outside double quotes. Joining the Raw
// fields with commas reproduces the line exactly.
func SplitLine(line string) []Cell {
	var cells []Cell
	start := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				cells = append(cells, newCell(line[start:i], start))
				start = i + 1
			}
		}
	}
	return append(cells, newCell(line[start:], start))
}

func newCell(raw string, offset int) Cell {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		return Cell{
			Raw:    raw,
			Value:  strings.ReplaceAll(trimmed[1:len(trimmed)-1], `""`, `"`),
			Offset: offset,
			Quoted: true,
		}
	}
	return Cell{Raw: raw, Value: trimmed, Offset: offset}
}

// ParseHeaders parses a header line. Malformed quoting falls back to SplitLine.
func ParseHeaders(line string) []string {
	reader := encsv.NewReader(strings.NewReader(line))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	record, err := reader.Read()
	if err != nil {
		record = nil
		for _, c := range SplitLine(line) {
			record = append(record, c.Value)
		}
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}
	return record
}

// render rebuilds a cell around a new value, keeping quoting and padding.
func (c Cell) render(value string) string {
	needsQuotes := c.Quoted || strings.ContainsAny(value, ",\"")
	if needsQuotes {
		value = `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}

	trimmed := strings.TrimSpace(c.Raw)
	lead := strings.Index(c.Raw, trimmed)
	if trimmed == "" || lead < 0 {
		return value
	}
	return c.Raw[:lead] + value + c.Raw[lead+len(trimmed):]
}
