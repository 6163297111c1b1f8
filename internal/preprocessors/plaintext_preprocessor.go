// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"ctxcopy/internal/observability"
)

// PlainTextPreprocessor reads text files verbatim so masking offsets refer to the file itself
type PlainTextPreprocessor struct {
	observer *observability.StandardObserver
	limits   *ResourceLimits
}

// NewPlainTextPreprocessor creates a new plain text preprocessor (nil limits use the defaults)
func NewPlainTextPreprocessor(limits *ResourceLimits) *PlainTextPreprocessor {
	if limits == nil {
		limits = DefaultResourceLimits()
	}
	return &PlainTextPreprocessor{limits: limits}
}

// SetObserver sets the observability component
func (ptp *PlainTextPreprocessor) SetObserver(observer *observability.StandardObserver) {
	ptp.observer = observer
}

// GetName returns the name of this preprocessor
func (ptp *PlainTextPreprocessor) GetName() string {
	return "Plain Text Preprocessor"
}

// GetSupportedExtensions returns the file extensions this preprocessor supports
func (ptp *PlainTextPreprocessor) GetSupportedExtensions() []string {
	return []string{
		// Plain text files
		".txt", ".text", ".log", ".md", ".markdown", ".rst",
		// Structured data
		".json", ".jsonl", ".ndjson", ".xml", ".csv", ".tsv",
		// Configuration files
		".yaml", ".yml", ".toml", ".ini", ".conf", ".config", ".cfg", ".env", ".properties",
		// Markup and source files that commonly embed fixtures
		".html", ".htm", ".sql", ".go", ".py", ".js", ".ts", ".java", ".cs",
	}
}

// CanProcess checks if this preprocessor can handle the given file
func (ptp *PlainTextPreprocessor) CanProcess(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))

	for _, supportedExt := range ptp.GetSupportedExtensions() {
		if ext == supportedExt {
			return true
		}
	}

	// For files without extension, do a quick content check
	if ext == "" {
		return ptp.isTextFile(filePath)
	}

	return false
}

// Process reads the file content
func (ptp *PlainTextPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	finishTiming := ptp.observer.StartTiming("plaintext_preprocessor", "process_file", filePath)

	content, err := ptp.readTextFile(filePath)
	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return &ProcessedContent{
			OriginalPath:  filePath,
			Filename:      filepath.Base(filePath),
			ProcessorType: "plaintext",
			Success:       false,
			Error:         err,
		}, err
	}

	result := &ProcessedContent{
		OriginalPath:  filePath,
		Filename:      filepath.Base(filePath),
		Text:          content,
		Format:        ptp.getFileTypeDescription(strings.ToLower(filepath.Ext(filePath))),
		WordCount:     len(strings.Fields(content)),
		CharCount:     len(content),
		LineCount:     strings.Count(content, "\n") + 1,
		ProcessorType: "plaintext",
		Success:       true,
	}

	finishTiming(true, map[string]interface{}{
		"word_count": result.WordCount,
		"char_count": result.CharCount,
		"line_count": result.LineCount,
	})
	return result, nil
}

// readTextFile reads the content of a text file within the configured limits
func (ptp *PlainTextPreprocessor) readTextFile(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)
	if err := ValidateFileSize(cleanPath, ptp.limits.MaxTextFileSize); err != nil {
		return "", err
	}

	fileContent, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	content := string(fileContent)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}

	lineCount := strings.Count(content, "\n") + 1
	if lineCount > ptp.limits.MaxLineCount {
		return "", fmt.Errorf("file has too many lines: %d (max: %d)", lineCount, ptp.limits.MaxLineCount)
	}

	return content, nil
}

// isTextFile performs a quick check to determine if a file contains text
func (ptp *PlainTextPreprocessor) isTextFile(filePath string) bool {
	file, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return false
	}
	defer file.Close()

	// Read first 512 bytes to check for binary content
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		return false
	}
	buffer = buffer[:n]

	printableCount := 0
	for _, b := range buffer {
		if b == 0 {
			return false
		}
		if (b >= 32 && b <= 126) || b == 9 || b == 10 || b == 13 || b >= 0x80 {
			printableCount++
		}
	}

	// Consider it text if more than 95% of characters are printable
	return float64(printableCount)/float64(len(buffer)) > 0.95
}

// getFileTypeDescription returns a human-readable description of the file type
func (ptp *PlainTextPreprocessor) getFileTypeDescription(ext string) string {
	descriptions := map[string]string{
		".txt":  "Plain Text",
		".text": "Plain Text",
		".log":  "Log File",
		".md":   "Markdown",
		".json": "JSON Data",
		".xml":  "XML Document",
		".csv":  "CSV Data",
		".tsv":  "TSV Data",
		".yaml": "YAML Configuration",
		".yml":  "YAML Configuration",
		".html": "HTML Document",
		".sql":  "SQL Script",
		".env":  "Environment Variables",
	}

	if desc, exists := descriptions[ext]; exists {
		return desc
	}
	return "Text File"
}
