package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/transcript-flow/internal/batch"
	"github.com/nguyentantai21042004/transcript-flow/internal/bootstrap"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "Batch pipeline failed: %v", err)
		os.Exit(1)
	}
}

// run sweeps jobs already in the inbox, then watches it for new ones until
// SIGINT/SIGTERM.
func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "Transcript batch pipeline on %s/%s, %d concurrent jobs",
		runtime.GOOS, runtime.GOARCH, cfg.Performance.MaxConcurrent)

	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	deps, err := bootstrap.Build(cfg, log)
	if err != nil {
		return fmt.Errorf("build dependencies: %w", err)
	}
	runner := batch.New(cfg.Paths, cfg.Performance.MaxConcurrent, deps.Pipeline, deps.Report, log)

	w, err := watcher.New(cfg.Paths.Input, runner.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	if err := runner.ProcessPending(ctx); err != nil {
		log.Warn(ctx, "Pending jobs: %v", err)
	}

	log.Info(ctx, "Inbox: %s, output: %s, archive: %s", cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived)
	log.Info(ctx, "Drop a .url or .txt file with a YouTube or Instagram link to start a job. Press Ctrl+C to stop")

	// Start returns once running jobs have finished
	err = w.Start(ctx)
	log.Info(ctx, "Batch pipeline stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
