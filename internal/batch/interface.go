package batch

import "context"

// Runner executes job files dropped into the inbox
type Runner interface {
	// Process runs one job file and writes its artifacts
	Process(ctx context.Context, jobPath string) error
	// ProcessPending runs every job already waiting in the inbox
	ProcessPending(ctx context.Context) error
}
