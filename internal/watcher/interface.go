package watcher

import "context"

// Watcher monitors the inbox directory for new job files
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one job file
type EventHandler func(ctx context.Context, filePath string) error
