package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const (
	defaultMaxConcurrent = 2
	defaultSettleDelay   = 500 * time.Millisecond
)

// New creates a Watcher on inputDir that runs at most maxConcurrent
// handlers at once.
func New(inputDir string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		settleDelay:   defaultSettleDelay,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
