package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-flow/internal/event"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

// Process runs the pipeline for one job. The event log is written to
// <name>.ndjson as events arrive; <name>.docx is written only for runs that
// reached "Done!". Successful jobs are moved to the archive, failed ones
// stay in the inbox for the next ProcessPending.
func (r *implRunner) Process(ctx context.Context, jobPath string) error {
	startTime := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithRequestID(ctx, runID)

	data, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("read job: %w", err)
	}
	req, err := ParseJob(data)
	if err != nil {
		return fmt.Errorf("parse job %s: %w", filepath.Base(jobPath), err)
	}

	name := strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))
	r.logger.Info(ctx, "Starting job %s: %s (target %q)", name, req.URL, req.TargetLanguage)

	result, err := r.run(ctx, req, filepath.Join(r.paths.Output, name+".ndjson"))
	if err != nil {
		return err
	}
	if !result.Done {
		return fmt.Errorf("run %s: %s", name, result.Err)
	}

	docxPath := filepath.Join(r.paths.Output, name+".docx")
	if err := r.report.WriteDocx(ctx, result, docxPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if err := r.moveToArchived(ctx, jobPath); err != nil {
		r.logger.Warn(ctx, "Failed to archive job: %v", err)
	}

	r.logger.Info(ctx, "Job %s completed in %s. Report: %s", name, time.Since(startTime), docxPath)
	return nil
}

// run streams the pipeline into the ndjson log and folds the events
func (r *implRunner) run(ctx context.Context, req pipeline.Request, logPath string) (*event.Result, error) {
	evLog, err := createEventLog(logPath)
	if err != nil {
		return nil, err
	}
	defer evLog.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := &event.Result{}
	var writeErr error
	for ev := range r.pipeline.Stream(runCtx, req) {
		if writeErr != nil {
			continue
		}
		result.Apply(ev)
		if err := evLog.Encode(ev); err != nil {
			writeErr = err
			cancel()
		}
	}
	if writeErr != nil {
		return nil, fmt.Errorf("write event log: %w", writeErr)
	}
	if err := evLog.Close(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessPending runs every job file present in the inbox, at most
// maxConcurrent at a time. Individual failures are logged.
func (r *implRunner) ProcessPending(ctx context.Context) error {
	entries, err := os.ReadDir(r.paths.Input)
	if err != nil {
		return fmt.Errorf("read inbox: %w", err)
	}

	sem := newSemaphore(r.maxConcurrent)
	var wg sync.WaitGroup
	for _, e := range entries {
		if e.IsDir() || !watcher.IsJobFile(e.Name()) {
			continue
		}
		if err := sem.acquire(ctx); err != nil {
			break
		}

		path := filepath.Join(r.paths.Input, e.Name())
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.release()
			if err := r.Process(ctx, path); err != nil {
				r.logger.Error(ctx, "Failed to process job %s: %v", path, err)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// moveToArchived moves a finished job out of the inbox
func (r *implRunner) moveToArchived(ctx context.Context, jobPath string) error {
	destPath := filepath.Join(r.paths.Archived, filepath.Base(jobPath))

	r.logger.Info(ctx, "Moving job to archived folder: %s -> %s", jobPath, destPath)

	if err := os.Rename(jobPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
