package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// JobExtensions lists the file types accepted as jobs
var JobExtensions = []string{".url", ".txt"}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	settleDelay   time.Duration
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start dispatches every job file created in the input directory until ctx
// is cancelled, then waits for running handlers.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Accepted job files: %s", strings.Join(JobExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for running jobs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}
			if !IsJobFile(ev.Name) {
				w.logger.Debug(ctx, "Ignoring non-job file: %s", ev.Name)
				continue
			}

			w.logger.Info(ctx, "New job detected: %s", ev.Name)

			// Writers create the file before filling it
			time.Sleep(w.settleDelay)

			if err := w.dispatch(ctx, ev.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch runs the handler in a goroutine once a slot is free
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process job %s: %v", path, err)
		}
	}()
	return nil
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// IsJobFile reports whether path is a visible file with a job extension
func IsJobFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range JobExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
