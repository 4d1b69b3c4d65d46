package textgen

import "context"

// Service covers the standalone text operations offered next to the
// transcription pipeline.
type Service interface {
	// Translate translates text in one call. JSON documents keep their keys
	// and structure; only values are translated.
	Translate(ctx context.Context, text, target string) (string, error)
	// TranslateStream translates text, forwarding chunks as they arrive.
	TranslateStream(ctx context.Context, text, target string, onChunk func(string) error) (string, error)
	// ExtractTopics returns the main topics of a transcript. Model output
	// that is not a JSON string array yields a Topics with Error set.
	ExtractTopics(ctx context.Context, text, target string) (Topics, error)
	// GenerateTitle never fails; it falls back to DefaultTitle.
	GenerateTitle(ctx context.Context, text string) string
}

// Topics is the outcome of topic extraction
type Topics struct {
	Topics     []string `json:"topics,omitempty"`
	Error      string   `json:"error,omitempty"`
	RawContent string   `json:"raw_content,omitempty"`
}
