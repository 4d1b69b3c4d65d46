package report

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/event"
)

// Writer renders the outcome of a pipeline run to a document
type Writer interface {
	WriteDocx(ctx context.Context, result *event.Result, outputPath string) error
}
