package pipeline

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/language"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/source"
	"github.com/nguyentantai21042004/transcript-flow/internal/textgen"
)

// Deps are the collaborators a Pipeline calls out to. Transcriber may be
// nil, in which case Instagram videos are never downloaded.
type Deps struct {
	Fetcher     source.Fetcher
	Downloader  source.Downloader
	Completion  completion.Service
	Transcriber completion.Service
	Detector    language.Detector
	Text        textgen.Service
}

type implPipeline struct {
	deps               Deps
	maxMediaBytes      int64
	transcriptionModel string
	logger             logger.Logger
}

// New creates a Pipeline. cfg is expected to be validated.
func New(cfg config.TranscriptionConfig, deps Deps, log logger.Logger) Pipeline {
	maxBytes := cfg.MaxMediaBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxMediaBytes
	}

	return &implPipeline{
		deps:               deps,
		maxMediaBytes:      maxBytes,
		transcriptionModel: cfg.Model,
		logger:             log,
	}
}
