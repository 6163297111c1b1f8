// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"ctxcopy/internal/observability"
)

// pageBreak separates extracted pages
const pageBreak = "\n--- PAGE BREAK ---\n"

// PDFPreprocessor extracts text and AcroForm field values from PDF documents
type PDFPreprocessor struct {
	observer *observability.StandardObserver
	limits   *ResourceLimits
}

// NewPDFPreprocessor creates a PDF preprocessor (nil limits use the defaults)
func NewPDFPreprocessor(limits *ResourceLimits) *PDFPreprocessor {
	if limits == nil {
		limits = DefaultResourceLimits()
	}
	return &PDFPreprocessor{limits: limits}
}

// SetObserver sets the observability component
func (pp *PDFPreprocessor) SetObserver(observer *observability.StandardObserver) {
	pp.observer = observer
}

// GetName returns the name of this preprocessor
func (pp *PDFPreprocessor) GetName() string {
	return "PDF Text Preprocessor"
}

// GetSupportedExtensions returns the file extensions this preprocessor supports
func (pp *PDFPreprocessor) GetSupportedExtensions() []string {
	return []string{".pdf"}
}

// CanProcess checks if this preprocessor can handle the given file
func (pp *PDFPreprocessor) CanProcess(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".pdf")
}

// Process extracts the document text. Only the first MaxPDFPages pages are read.
func (pp *PDFPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	finishTiming := pp.observer.StartTiming("pdf_preprocessor", "process_file", filePath)

	result := &ProcessedContent{
		OriginalPath:  filePath,
		Filename:      filepath.Base(filePath),
		Format:        "PDF Document",
		ProcessorType: "pdf",
	}

	fail := func(reason string, err error) (*ProcessedContent, error) {
		perr := NewProcessingError(filePath, "pdf", reason, err)
		result.Error = perr
		finishTiming(false, map[string]interface{}{"error": perr.Error()})
		return result, perr
	}

	if err := ValidateFileSize(filePath, pp.limits.MaxPDFFileSize); err != nil {
		return fail("size limit", err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return fail("open", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > pp.limits.MaxPDFPages {
		pageCount = pp.limits.MaxPDFPages
	}

	pageTexts := make([]string, pageCount)
	var g errgroup.Group
	for i := 1; i <= pageCount; i++ {
		pageNum := i
		g.Go(func() error {
			p := r.Page(pageNum)
			if p.V.IsNull() {
				return nil
			}
			text, err := extractTextWithProperSpacing(p)
			if err != nil {
				// unreadable pages are skipped
				return nil
			}
			pageTexts[pageNum-1] = text
			return nil
		})
	}
	_ = g.Wait()

	var buf bytes.Buffer
	for _, text := range pageTexts {
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(pageBreak)
		}
		buf.WriteString(text)
	}

	if formData := extractFormData(r); formData != "" {
		buf.WriteString("\n--- PDF Form Data ---\n")
		buf.WriteString(formData)
	}

	result.Text = cleanTextPreservingStructure(buf.String())
	result.PageCount = pageCount
	result.WordCount = len(strings.Fields(result.Text))
	result.CharCount = len(result.Text)
	result.LineCount = strings.Count(result.Text, "\n") + 1
	result.Success = true

	finishTiming(true, map[string]interface{}{
		"page_count": result.PageCount,
		"char_count": result.CharCount,
	})
	return result, nil
}

// extractFormData lists AcroForm fields as "name: value" lines so labelled values keep their context
func extractFormData(r *pdf.Reader) string {
	root := r.Trailer().Key("Root")
	if root.IsNull() {
		return ""
	}
	fields := root.Key("AcroForm").Key("Fields")
	if fields.IsNull() || fields.Kind() != pdf.Array {
		return ""
	}

	var buf bytes.Buffer
	for i := 0; i < fields.Len(); i++ {
		name, value := extractFieldNameValue(fields.Index(i))
		if name != "" && value != "" {
			fmt.Fprintf(&buf, "%s: %s\n", name, value)
		}
	}
	return buf.String()
}

// extractFieldNameValue extracts name and value from a single form field
func extractFieldNameValue(field pdf.Value) (string, string) {
	if field.Kind() != pdf.Dict {
		return "", ""
	}

	var fieldName string
	if t := field.Key("T"); t.Kind() == pdf.String {
		fieldName = t.Text()
	}

	// V holds the value, DV the default
	for _, key := range []string{"V", "DV"} {
		v := field.Key(key)
		switch v.Kind() {
		case pdf.String:
			return fieldName, v.Text()
		case pdf.Name:
			return fieldName, v.Name()
		}
	}
	return fieldName, ""
}

// cleanTextPreservingStructure drops empty lines and collapses runs of blanks within a line
func cleanTextPreservingStructure(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", " "), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// extractTextWithProperSpacing extracts text row by row, top to bottom
func extractTextWithProperSpacing(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}

	// PDF Y grows upwards
	sort.SliceStable(sortedRows, func(i, j int) bool {
		return getAverageY(sortedRows[i].Content) > getAverageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			buf.WriteString(rowText)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

// getAverageY calculates the average Y coordinate for text elements in a row
func getAverageY(textElements []pdf.Text) float64 {
	if len(textElements) == 0 {
		return 0
	}
	var totalY float64
	for _, element := range textElements {
		totalY += element.Y
	}
	return totalY / float64(len(textElements))
}

// reconstructRowText joins a row's elements left to right, inserting a space at visible gaps
func reconstructRowText(textElements []pdf.Text) string {
	sorted := make([]pdf.Text, len(textElements))
	copy(sorted, textElements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, element := range sorted {
		buf.WriteString(element.S)
		if i == len(sorted)-1 {
			break
		}

		fontSize := element.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		// a gap wider than a fifth of the font size is a word break
		gap := sorted[i+1].X - (element.X + element.W)
		if gap > fontSize*0.2 {
			buf.WriteString(" ")
		}
	}
	return buf.String()
}
