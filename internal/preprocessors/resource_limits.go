// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"errors"
	"fmt"
	"os"
)

// ErrFileTooLarge is wrapped by every size limit failure
var ErrFileTooLarge = errors.New("file too large")

// ResourceLimits bounds what a preprocessor will load into memory
type ResourceLimits struct {
	MaxTextFileSize int64 // Maximum plain text file size in bytes
	MaxLineCount    int   // Maximum number of lines in a text file
	MaxPDFFileSize  int64 // Maximum PDF file size in bytes
	MaxPDFPages     int   // Pages beyond this are not extracted
}

// DefaultResourceLimits returns the default limits
func DefaultResourceLimits() *ResourceLimits {
	return &ResourceLimits{
		MaxTextFileSize: 100 * 1024 * 1024, // 100MB
		MaxLineCount:    1000000,
		MaxPDFFileSize:  200 * 1024 * 1024, // 200MB
		MaxPDFPages:     50,
	}
}

// ValidateFileSize checks that the file at filePath is at most maxSize bytes
func ValidateFileSize(filePath string, maxSize int64) error {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	if fileInfo.Size() > maxSize {
		return fmt.Errorf("%w: %d bytes (max %d bytes)", ErrFileTooLarge, fileInfo.Size(), maxSize)
	}
	return nil
}

// ProcessingError represents an error that occurred while extracting text
type ProcessingError struct {
	FilePath string
	FileType string
	Reason   string
	Err      error
}

// Error implements the error interface
func (pe *ProcessingError) Error() string {
	if pe.Err != nil {
		return fmt.Sprintf("processing failed for %s (%s): %s - %v",
			pe.FilePath, pe.FileType, pe.Reason, pe.Err)
	}
	return fmt.Sprintf("processing failed for %s (%s): %s",
		pe.FilePath, pe.FileType, pe.Reason)
}

// Unwrap returns the underlying error
func (pe *ProcessingError) Unwrap() error {
	return pe.Err
}

// NewProcessingError creates a new processing error
func NewProcessingError(filePath, fileType, reason string, err error) *ProcessingError {
	return &ProcessingError{
		FilePath: filePath,
		FileType: fileType,
		Reason:   reason,
		Err:      err,
	}
}

// IsFileSizeError reports whether err came from a size limit
func IsFileSizeError(err error) bool {
	return errors.Is(err, ErrFileTooLarge)
}
