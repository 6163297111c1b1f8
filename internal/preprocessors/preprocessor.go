// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors extracts text from input files before masking.
package preprocessors

import (
	"fmt"
	"path/filepath"

	"ctxcopy/internal/observability"
)

// ProcessedContent represents content that has been processed by a preprocessor
type ProcessedContent struct {
	// Original file information
	OriginalPath string
	Filename     string

	// Extracted content
	Text string

	// Content metadata
	Format    string
	PageCount int
	WordCount int
	CharCount int
	LineCount int

	// Processing information
	ProcessorType string
	Success       bool
	Error         error
}

// Preprocessor interface defines methods for preprocessing files
type Preprocessor interface {
	// CanProcess checks if this preprocessor can handle the given file
	CanProcess(filePath string) bool

	// Process extracts content from the file
	Process(filePath string) (*ProcessedContent, error)

	// GetName returns the name of this preprocessor
	GetName() string

	// GetSupportedExtensions returns the file extensions this preprocessor supports
	GetSupportedExtensions() []string

	// SetObserver sets the observability component
	SetObserver(observer *observability.StandardObserver)
}

// PreprocessorManager manages all available preprocessors
type PreprocessorManager struct {
	preprocessors []Preprocessor
}

// NewPreprocessorManager creates a new preprocessor manager
func NewPreprocessorManager() *PreprocessorManager {
	return &PreprocessorManager{
		preprocessors: make([]Preprocessor, 0),
	}
}

// NewDefaultManager registers the PDF and plain text preprocessors with shared limits.
func NewDefaultManager(limits *ResourceLimits) *PreprocessorManager {
	if limits == nil {
		limits = DefaultResourceLimits()
	}
	pm := NewPreprocessorManager()
	pm.RegisterPreprocessor(NewPDFPreprocessor(limits))
	pm.RegisterPreprocessor(NewPlainTextPreprocessor(limits))
	return pm
}

// RegisterPreprocessor adds a preprocessor to the manager
func (pm *PreprocessorManager) RegisterPreprocessor(p Preprocessor) {
	pm.preprocessors = append(pm.preprocessors, p)
}

// SetObserver attaches observer to every registered preprocessor
func (pm *PreprocessorManager) SetObserver(observer *observability.StandardObserver) {
	for _, p := range pm.preprocessors {
		p.SetObserver(observer)
	}
}

// GetPreprocessor returns the appropriate preprocessor for a file, or nil if none found
func (pm *PreprocessorManager) GetPreprocessor(filePath string) Preprocessor {
	for _, p := range pm.preprocessors {
		if p.CanProcess(filePath) {
			return p
		}
	}
	return nil
}

// ProcessFile extracts text with the first preprocessor that succeeds.
func (pm *PreprocessorManager) ProcessFile(filePath string) (*ProcessedContent, error) {
	var availablePreprocessors []Preprocessor
	for _, p := range pm.preprocessors {
		if p.CanProcess(filePath) {
			availablePreprocessors = append(availablePreprocessors, p)
		}
	}

	if len(availablePreprocessors) == 0 {
		err := fmt.Errorf("file type not supported for processing: %s", filePath)
		return &ProcessedContent{
			OriginalPath:  filePath,
			Filename:      filepath.Base(filePath),
			ProcessorType: "none",
			Success:       false,
			Error:         err,
		}, err
	}

	var lastError error
	for _, preprocessor := range availablePreprocessors {
		result, err := preprocessor.Process(filePath)
		if err == nil && result != nil && result.Success {
			return result, nil
		}
		lastError = err
	}

	return &ProcessedContent{
		OriginalPath:  filePath,
		Filename:      filepath.Base(filePath),
		ProcessorType: "failed",
		Success:       false,
		Error:         lastError,
	}, lastError
}

// GetAvailablePreprocessors returns all registered preprocessors
func (pm *PreprocessorManager) GetAvailablePreprocessors() []Preprocessor {
	return pm.preprocessors
}
