package completion

import (
	"context"
	"sync"
)

// MockService is a Service driven by func fields. A nil CompleteFunc
// returns an empty string; a nil StreamFunc streams the CompleteFunc
// result as a single chunk.
type MockService struct {
	CompleteFunc func(ctx context.Context, req Request) (string, error)
	StreamFunc   func(ctx context.Context, req Request, onChunk func(string) error) (string, error)

	mu       sync.Mutex
	requests []Request
}

func (m *MockService) Complete(ctx context.Context, req Request) (string, error) {
	m.record(req)
	if m.CompleteFunc == nil {
		return "", nil
	}
	return m.CompleteFunc(ctx, req)
}

func (m *MockService) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	m.record(req)
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, req, onChunk)
	}

	var text string
	if m.CompleteFunc != nil {
		var err error
		if text, err = m.CompleteFunc(ctx, req); err != nil {
			return "", err
		}
	}
	if text != "" {
		if err := onChunk(text); err != nil {
			return text, err
		}
	}
	return text, nil
}

// Requests returns every request received so far, in order
func (m *MockService) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

func (m *MockService) record(req Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
}
