// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel masks several files concurrently on a bounded worker pool.
package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ctxcopy/internal/observability"
	"ctxcopy/internal/pii"
)

// Job represents a file processing task
type Job struct {
	JobID    string
	FilePath string
}

// Result represents processing results
type Result struct {
	JobID     string
	FilePath  string
	Processor string
	Masked    pii.MaskedResult
	Error     error
	Duration  time.Duration
}

// Handler masks one file. It fills Masked and Processor; the pool sets the rest.
type Handler func(ctx context.Context, filePath string) (*Result, error)

// WorkerPool runs handlers with at most workers in flight
type WorkerPool struct {
	workers  int
	observer *observability.StandardObserver
}

// NewWorkerPool creates a worker pool. Fewer than one worker means one.
func NewWorkerPool(workers int, observer *observability.StandardObserver) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{workers: workers, observer: observer}
}

// Workers returns the pool size
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Run processes every job and returns results in job order. A failing job
// only records its error; Run itself fails when ctx is cancelled.
func (wp *WorkerPool) Run(ctx context.Context, jobs []*Job, handler Handler, onDone func(*Result)) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workers)

	for i, job := range jobs {
		i, job := i, job
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = wp.processJob(gctx, job, handler)

			if onDone != nil {
				mu.Lock()
				onDone(results[i])
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// processJob runs one handler, turning a panic into a job error
func (wp *WorkerPool) processJob(ctx context.Context, job *Job, handler Handler) (result *Result) {
	start := time.Now()
	finish := wp.observer.StartTiming("worker_pool", "process_file", job.FilePath)

	defer func() {
		if r := recover(); r != nil {
			result = &Result{Error: fmt.Errorf("panic while processing %s: %v", job.FilePath, r)}
		}
		result.JobID = job.JobID
		result.FilePath = job.FilePath
		result.Duration = time.Since(start)
		finish(result.Error == nil, map[string]interface{}{
			"detections": len(result.Masked.Detections),
		})
	}()

	out, err := handler(ctx, job.FilePath)
	if err != nil {
		return &Result{Error: err}
	}
	if out == nil {
		out = &Result{}
	}
	return out
}
