// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"ctxcopy/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(reports []formatters.FileReport, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Filename", "Type", "Confidence Level", "Confidence %", "Line", "Column", "Masked Value"}
	if options.ShowOriginal {
		headers = append(headers, "Original Value")
	}
	if options.Verbose {
		headers = append(headers, "CSV Column")
	}

	csvRows := []string{strings.Join(headers, ",")}

	for _, report := range reports {
		if report.Error != nil {
			continue
		}
		for _, d := range formatters.FilterDetections(report.Result.Detections, options) {
			row := []string{
				f.escapeCSVField(report.Filename),
				f.escapeCSVField(d.Type.String()),
				formatters.ConfidenceLevel(d.Confidence),
				fmt.Sprintf("%.1f", d.Confidence*100),
				fmt.Sprintf("%d", d.Line),
				fmt.Sprintf("%d", d.Column),
				f.escapeCSVField(d.MaskedValue),
			}
			if options.ShowOriginal {
				row = append(row, f.escapeCSVField(d.OriginalValue))
			}
			if options.Verbose {
				column := ""
				if d.ColumnContext != nil {
					column = d.ColumnContext.Name
				}
				row = append(row, f.escapeCSVField(column))
			}
			csvRows = append(csvRows, strings.Join(row, ","))
		}
	}

	return strings.Join(csvRows, "\n"), nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection neutralizes leading spreadsheet formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
