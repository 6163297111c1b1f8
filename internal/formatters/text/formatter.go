// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"sort"
	"strings"

	"ctxcopy/internal/formatters"
	"ctxcopy/internal/pii"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// row is one detection with the file it came from
type row struct {
	filename  string
	detection pii.Detection
}

func (f *Formatter) Format(reports []formatters.FileReport, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder
	var rows []row
	var total int
	for _, report := range reports {
		if report.Error != nil {
			continue
		}
		total += len(report.Result.Detections)
		for _, d := range formatters.FilterDetections(report.Result.Detections, options) {
			rows = append(rows, row{filename: report.Filename, detection: d})
		}
	}

	switch {
	case total == 0:
		builder.WriteString("No PII detected.\n")
	case len(rows) == 0:
		builder.WriteString("No detections at the specified confidence levels.\n")
	default:
		f.sortRows(rows)
		if !options.Verbose {
			f.appendHeaders(&builder, rows, options)
		}
		for _, r := range rows {
			if options.Verbose {
				f.appendDetailed(&builder, r, options)
				continue
			}
			f.appendSummaryLine(&builder, r, rows, options)
		}
	}

	f.appendErrors(&builder, reports, options)

	if options.ShowMasked {
		for _, report := range reports {
			if report.Error != nil {
				continue
			}
			f.appendMaskedText(&builder, report, options)
		}
	}

	return builder.String(), nil
}

func (f *Formatter) paint(name string, options formatters.FormatterOptions, format string, args ...interface{}) string {
	if options.NoColor {
		return fmt.Sprintf(format, args...)
	}
	return f.colors[name].Sprintf(format, args...)
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, rows []row, options formatters.FormatterOptions) {
	valueWidth := f.valueColumnWidth(rows, options)
	builder.WriteString(f.paint("white", options, "%-8s %-18s %-8s %-14s %-*s %s\n",
		"LEVEL", "TYPE", "CONF%", "POSITION", valueWidth, "VALUE", "FILE"))

	totalWidth := 8 + 1 + 18 + 1 + 8 + 1 + 14 + 1 + valueWidth + 1 + 10
	builder.WriteString(f.paint("white", options, "%s\n", strings.Repeat("-", totalWidth)))
}

// valueColumnWidth sizes the value column to its widest entry, capped at 30
func (f *Formatter) valueColumnWidth(rows []row, options formatters.FormatterOptions) int {
	maxWidth := 5
	for _, r := range rows {
		n := len([]rune(f.displayValue(r.detection, options)))
		if n > maxWidth {
			maxWidth = n
		}
	}
	if maxWidth > 30 {
		maxWidth = 30
	}
	return maxWidth
}

func (f *Formatter) displayValue(d pii.Detection, options formatters.FormatterOptions) string {
	value := d.MaskedValue
	if options.ShowOriginal && d.OriginalValue != "" {
		value = d.OriginalValue
	}
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "\t", " ")
}

// appendSummaryLine adds a single line summary to the string builder
func (f *Formatter) appendSummaryLine(builder *strings.Builder, r row, rows []row, options formatters.FormatterOptions) {
	d := r.detection
	level := formatters.ConfidenceLevel(d.Confidence)

	typeDisplay := d.Type.String()
	if len(typeDisplay) > 18 {
		typeDisplay = typeDisplay[:15] + "..."
	}

	valueWidth := f.valueColumnWidth(rows, options)
	value := f.displayValue(d, options)
	if runes := []rune(value); len(runes) > valueWidth {
		value = string(runes[:valueWidth-3]) + "..."
	}

	fmt.Fprintf(builder, "%s %s %s %s %-*s %s\n",
		f.paint(f.levelColor(level), options, "[%-6s]", level),
		f.paint("cyan", options, "%-18s", typeDisplay),
		f.paint("blue", options, "%7.2f%%", d.Confidence*100),
		f.paint("magenta", options, "%-14s", fmt.Sprintf("%d:%d", d.Line, d.Column)),
		valueWidth, value,
		r.filename)
}

// appendDetailed prints every field of one detection
func (f *Formatter) appendDetailed(builder *strings.Builder, r row, options formatters.FormatterOptions) {
	d := r.detection
	level := formatters.ConfidenceLevel(d.Confidence)

	builder.WriteString(f.paint(f.levelColor(level), options, "[%s] %s\n", level, d.Type))
	fmt.Fprintf(builder, "  File:       %s\n", r.filename)
	fmt.Fprintf(builder, "  Position:   line %d, column %d\n", d.Line, d.Column)
	fmt.Fprintf(builder, "  Confidence: %.2f%%\n", d.Confidence*100)
	fmt.Fprintf(builder, "  Masked:     %s\n", d.MaskedValue)
	if options.ShowOriginal && d.OriginalValue != "" {
		fmt.Fprintf(builder, "  Original:   %s\n", d.OriginalValue)
	}
	if d.ColumnContext != nil {
		fmt.Fprintf(builder, "  CSV column: %s (#%d)\n", d.ColumnContext.Name, d.ColumnContext.Index)
	}
	builder.WriteString("\n")
}

func (f *Formatter) appendErrors(builder *strings.Builder, reports []formatters.FileReport, options formatters.FormatterOptions) {
	for _, report := range reports {
		if report.Error == nil {
			continue
		}
		builder.WriteString(f.paint("red", options, "ERROR %s: %v\n", report.Filename, report.Error))
	}
}

func (f *Formatter) appendMaskedText(builder *strings.Builder, report formatters.FileReport, options formatters.FormatterOptions) {
	builder.WriteString("\n")
	builder.WriteString(f.paint("white", options, "==> %s <==\n", report.Filename))
	builder.WriteString(report.Result.MaskedText)
	if !strings.HasSuffix(report.Result.MaskedText, "\n") {
		builder.WriteString("\n")
	}
}

func (f *Formatter) levelColor(level string) string {
	switch level {
	case "HIGH":
		return "red"
	case "MEDIUM":
		return "yellow"
	default:
		return "green"
	}
}

// sortRows orders by confidence descending, then by file and position
func (f *Formatter) sortRows(rows []row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.detection.Confidence != b.detection.Confidence {
			return a.detection.Confidence > b.detection.Confidence
		}
		if a.filename != b.filename {
			return a.filename < b.filename
		}
		if a.detection.Line != b.detection.Line {
			return a.detection.Line < b.detection.Line
		}
		return a.detection.Column < b.detection.Column
	})
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
