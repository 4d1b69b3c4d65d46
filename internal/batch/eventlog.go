package batch

import (
	"bufio"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/transcript-flow/internal/event"
)

// eventLog is the <name>.ndjson file of one run
type eventLog struct {
	f      *os.File
	enc    *event.Encoder
	closed bool
}

func createEventLog(path string) (*eventLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create event log: %w", err)
	}
	return &eventLog{f: f, enc: event.NewEncoder(bufio.NewWriter(f))}, nil
}

// Encode appends one event; the record is flushed to the file immediately
func (l *eventLog) Encode(ev event.Event) error {
	return l.enc.Encode(ev)
}

// Close closes the file once. Later calls return nil.
func (l *eventLog) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.f.Close(); err != nil {
		return fmt.Errorf("close event log: %w", err)
	}
	return nil
}
