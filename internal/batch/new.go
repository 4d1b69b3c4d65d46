package batch

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/report"
)

type implRunner struct {
	paths         config.PathsConfig
	maxConcurrent int
	pipeline      pipeline.Pipeline
	report        report.Writer
	logger        logger.Logger
}

// New creates a Runner writing artifacts under paths.Output and archiving
// finished jobs to paths.Archived.
func New(paths config.PathsConfig, maxConcurrent int, pipe pipeline.Pipeline, writer report.Writer, log logger.Logger) Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &implRunner{
		paths:         paths,
		maxConcurrent: maxConcurrent,
		pipeline:      pipe,
		report:        writer,
		logger:        log,
	}
}
