package completion

import (
	"context"
	"errors"
)

var ErrEmptyResponse = errors.New("empty completion response")

// Service produces text from a prompt, either in one piece or as a stream of
// chunks. Implementations are safe for concurrent use.
type Service interface {
	// Complete returns the whole completion text.
	Complete(ctx context.Context, req Request) (string, error)
	// Stream calls onChunk for every non-empty delta, in order, and returns
	// the concatenated text. An error from onChunk stops the stream and is
	// returned as is.
	Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error)
}

// Request is a single-turn completion request
type Request struct {
	// Model overrides the service default when set
	Model      string
	System     string
	Prompt     string
	MaxTokens  int
	Attachment *Attachment
}

// Attachment is binary media sent along with the prompt
type Attachment struct {
	MIMEType string
	Data     []byte
}
