// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"

	"ctxcopy/internal/config"
	"ctxcopy/internal/parallel"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/preprocessors"
)

// FileConfig holds configuration for masking files.
type FileConfig struct {
	Masking *config.MaskingConfig
	Format  Format
	Workers int

	// Preprocessors extracts the text of each file. Nil uses the default manager.
	Preprocessors *preprocessors.PreprocessorManager

	// Progress, when set, is called after every file
	Progress parallel.ProgressCallback
}

// FileResult is the outcome for one input file
type FileResult struct {
	FilePath  string
	Processor string
	Result    pii.MaskedResult
	Error     error
}

// MaskResult holds the results of a multi-file run.
type MaskResult struct {
	Files []FileResult
	Stats *parallel.ProcessingStats
}

// MaskFile extracts the text of one file and masks it. With FormatAuto the
// file extension takes precedence over content sniffing; extracted PDF text
// is always masked as plain text.
func (e *Engine) MaskFile(filePath string, cfg FileConfig) (*FileResult, error) {
	manager := cfg.Preprocessors
	if manager == nil {
		manager = preprocessors.NewDefaultManager(nil)
		manager.SetObserver(e.observer)
	}

	processed, err := manager.ProcessFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", filePath, err)
	}

	format := cfg.Format
	if processed.ProcessorType == "pdf" {
		format = FormatText
	}

	return &FileResult{
		FilePath:  filePath,
		Processor: processed.ProcessorType,
		Result:    e.maskDocument(processed.Text, cfg.Masking, format, filePath),
	}, nil
}

// MaskFiles masks every file on a worker pool. Results keep the input order;
// a file that fails carries its error and does not stop the others.
func (e *Engine) MaskFiles(ctx context.Context, filePaths []string, cfg FileConfig) (*MaskResult, error) {
	if cfg.Preprocessors == nil {
		cfg.Preprocessors = preprocessors.NewDefaultManager(nil)
		cfg.Preprocessors.SetObserver(e.observer)
	}

	processor := parallel.NewParallelProcessor(cfg.Workers, e.observer)
	results, stats, err := processor.ProcessFilesWithProgress(ctx, filePaths,
		func(ctx context.Context, filePath string) (*parallel.Result, error) {
			fr, err := e.MaskFile(filePath, cfg)
			if err != nil {
				return nil, err
			}
			return &parallel.Result{Processor: fr.Processor, Masked: fr.Result}, nil
		}, cfg.Progress)
	if err != nil {
		return nil, fmt.Errorf("parallel processing failed: %w", err)
	}

	files := make([]FileResult, len(results))
	for i, r := range results {
		files[i] = FileResult{
			FilePath:  r.FilePath,
			Processor: r.Processor,
			Result:    r.Masked,
			Error:     r.Error,
		}
	}
	return &MaskResult{Files: files, Stats: stats}, nil
}
