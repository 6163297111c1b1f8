// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"ctxcopy/internal/formatters"
	"ctxcopy/internal/pii"
)

// JSONResponse represents the top-level response structure for JSON/YAML output
type JSONResponse struct {
	Results []JSONDetection `json:"results" yaml:"results"`
	Files   []JSONFile      `json:"files,omitempty" yaml:"files,omitempty"`
	Errors  []JSONError     `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// JSONDetection represents a single detection in JSON/YAML format
type JSONDetection struct {
	Filename        string             `json:"filename" yaml:"filename"`
	Type            string             `json:"type" yaml:"type"`
	Line            int                `json:"line" yaml:"line"`
	Column          int                `json:"column" yaml:"column"`
	Confidence      float64            `json:"confidence" yaml:"confidence"`
	ConfidenceLevel string             `json:"confidence_level" yaml:"confidence_level"`
	MaskedValue     string             `json:"masked_value" yaml:"masked_value"`
	OriginalValue   string             `json:"original_value,omitempty" yaml:"original_value,omitempty"`
	ColumnContext   *pii.ColumnContext `json:"column_context,omitempty" yaml:"column_context,omitempty"`
}

// JSONFile carries the masked document of one input
type JSONFile struct {
	Filename       string `json:"filename" yaml:"filename"`
	Processor      string `json:"processor,omitempty" yaml:"processor,omitempty"`
	MaskingApplied bool   `json:"masking_applied" yaml:"masking_applied"`
	MaskedText     string `json:"masked_text" yaml:"masked_text"`
}

// JSONError records an input that could not be processed
type JSONError struct {
	Filename string `json:"filename" yaml:"filename"`
	Error    string `json:"error" yaml:"error"`
}

// ConvertToJSONFormat converts file reports to the JSON/YAML response shape
func ConvertToJSONFormat(reports []formatters.FileReport, options formatters.FormatterOptions) JSONResponse {
	response := JSONResponse{Results: []JSONDetection{}}

	for _, report := range reports {
		if report.Error != nil {
			response.Errors = append(response.Errors, JSONError{
				Filename: report.Filename,
				Error:    report.Error.Error(),
			})
			continue
		}

		for _, d := range formatters.FilterDetections(report.Result.Detections, options) {
			jd := JSONDetection{
				Filename:        report.Filename,
				Type:            d.Type.String(),
				Line:            d.Line,
				Column:          d.Column,
				Confidence:      d.Confidence,
				ConfidenceLevel: formatters.ConfidenceLevel(d.Confidence),
				MaskedValue:     d.MaskedValue,
			}
			if options.ShowOriginal {
				jd.OriginalValue = d.OriginalValue
			}
			if options.Verbose {
				jd.ColumnContext = d.ColumnContext
			}
			response.Results = append(response.Results, jd)
		}

		if options.ShowMasked {
			response.Files = append(response.Files, JSONFile{
				Filename:       report.Filename,
				Processor:      report.Processor,
				MaskingApplied: report.Result.MaskingApplied,
				MaskedText:     report.Result.MaskedText,
			})
		}
	}

	return response
}
