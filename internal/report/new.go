package report

import "github.com/nguyentantai21042004/transcript-flow/internal/logger"

type implWriter struct {
	logger logger.Logger
}

// New creates a docx report Writer
func New(log logger.Logger) Writer {
	return &implWriter{logger: log}
}
