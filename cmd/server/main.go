package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/bootstrap"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/httpapi"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Transcript API starting")
	log.Info(ctx, "Completion model: %s", cfg.Completion.Model)
	log.Info(ctx, "Transcription: %s (%s)", cfg.Transcription.Provider, cfg.Transcription.Model)
	log.Info(ctx, "Language detector: %s", cfg.Language.Detector)

	deps, err := bootstrap.Build(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to build dependencies: %v", err)
		os.Exit(1)
	}

	handler := httpapi.NewHandler(deps.Pipeline, deps.Text, log)
	app := httpapi.NewApp(cfg.Server, handler, log)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := app.Listen(cfg.Server.Addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Shutting down gracefully...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}
	log.Info(ctx, "Transcript API stopped")
}
