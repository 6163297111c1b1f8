// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"ctxcopy/internal/observability"
)

// maxDefaultWorkers caps the CPU derived default
const maxDefaultWorkers = 8

// ParallelProcessor manages parallel file processing
type ParallelProcessor struct {
	workerPool *WorkerPool
	observer   *observability.StandardObserver
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalFiles      int           `json:"total_files" yaml:"total_files"`
	ProcessedFiles  int           `json:"processed_files" yaml:"processed_files"`
	FailedFiles     int           `json:"failed_files" yaml:"failed_files"`
	TotalDetections int           `json:"total_detections" yaml:"total_detections"`
	TotalDuration   time.Duration `json:"total_duration_ms" yaml:"total_duration_ms"`
	WorkerCount     int           `json:"worker_count" yaml:"worker_count"`
	AvgFileTime     time.Duration `json:"avg_file_time_ms" yaml:"avg_file_time_ms"`
}

// DefaultWorkers is the CPU count capped at 8
func DefaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > maxDefaultWorkers {
		workers = maxDefaultWorkers
	}
	return workers
}

// NewParallelProcessor creates a processor with workers goroutines; zero or less uses DefaultWorkers.
func NewParallelProcessor(workers int, observer *observability.StandardObserver) *ParallelProcessor {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &ParallelProcessor{
		workerPool: NewWorkerPool(workers, observer),
		observer:   observer,
	}
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// ProcessFiles processes multiple files in parallel
func (pp *ParallelProcessor) ProcessFiles(ctx context.Context, filePaths []string, handler Handler) ([]*Result, *ProcessingStats, error) {
	return pp.ProcessFilesWithProgress(ctx, filePaths, handler, nil)
}

// ProcessFilesWithProgress processes multiple files in parallel with progress callback
func (pp *ParallelProcessor) ProcessFilesWithProgress(ctx context.Context, filePaths []string, handler Handler, progressCallback ProgressCallback) ([]*Result, *ProcessingStats, error) {
	start := time.Now()
	finishTiming := pp.observer.StartTiming("parallel_processor", "process_files", "batch")

	jobs := make([]*Job, len(filePaths))
	for i, path := range filePaths {
		jobs[i] = &Job{JobID: fmt.Sprintf("job-%d", i), FilePath: path}
	}

	stats := &ProcessingStats{
		TotalFiles:  len(filePaths),
		WorkerCount: pp.workerPool.Workers(),
	}

	completed := 0
	results, err := pp.workerPool.Run(ctx, jobs, handler, func(r *Result) {
		completed++
		if r.Error != nil {
			stats.FailedFiles++
		} else {
			stats.ProcessedFiles++
			stats.TotalDetections += len(r.Masked.Detections)
		}
		if progressCallback != nil {
			progressCallback(completed, len(jobs), r.FilePath)
		}
	})
	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return nil, nil, err
	}

	stats.TotalDuration = time.Since(start)
	if len(jobs) > 0 {
		stats.AvgFileTime = stats.TotalDuration / time.Duration(len(jobs))
	}

	finishTiming(true, map[string]interface{}{
		"total_files":      stats.TotalFiles,
		"failed_files":     stats.FailedFiles,
		"total_detections": stats.TotalDetections,
		"worker_count":     stats.WorkerCount,
	})
	return results, stats, nil
}
