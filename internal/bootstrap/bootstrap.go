package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/language"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/report"
	"github.com/nguyentantai21042004/transcript-flow/internal/source"
	"github.com/nguyentantai21042004/transcript-flow/internal/textgen"
)

// Dependencies are the long lived services shared by both binaries
type Dependencies struct {
	Completion  completion.Service
	Transcriber completion.Service
	Detector    language.Detector
	Text        textgen.Service
	Pipeline    pipeline.Pipeline
	Report      report.Writer
}

// Build constructs every service from a validated config
func Build(cfg *config.Config, log logger.Logger) (*Dependencies, error) {
	comp := completion.NewOpenRouter(cfg.Completion, log.WithField("component", "openrouter"))

	transcriber, err := newTranscriber(cfg, comp, log)
	if err != nil {
		return nil, err
	}

	detector, err := newDetector(cfg.Language, comp)
	if err != nil {
		return nil, err
	}

	text := textgen.New(comp, log.WithField("component", "textgen"))

	fetcher := source.NewApify(cfg.Apify, &http.Client{Timeout: cfg.Apify.Timeout}, log.WithField("component", "apify"))
	downloader := source.NewDownloader(&http.Client{Timeout: cfg.Transcription.DownloadTimeout})

	pipe := pipeline.New(cfg.Transcription, pipeline.Deps{
		Fetcher:     fetcher,
		Downloader:  downloader,
		Completion:  comp,
		Transcriber: transcriber,
		Detector:    detector,
		Text:        text,
	}, log.WithField("component", "pipeline"))

	return &Dependencies{
		Completion:  comp,
		Transcriber: transcriber,
		Detector:    detector,
		Text:        text,
		Pipeline:    pipe,
		Report:      report.New(log.WithField("component", "report")),
	}, nil
}

// newTranscriber returns nil when video transcription is disabled
func newTranscriber(cfg *config.Config, comp completion.Service, log logger.Logger) (completion.Service, error) {
	switch cfg.Transcription.Provider {
	case "openrouter":
		return comp, nil
	case "gemini":
		client := &http.Client{Timeout: cfg.Completion.Timeout}
		return completion.NewGemini(cfg.Gemini, client, log.WithField("component", "gemini")), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", cfg.Transcription.Provider)
	}
}

func newDetector(cfg config.LanguageConfig, comp completion.Service) (language.Detector, error) {
	switch cfg.Detector {
	case "llm":
		return language.NewLLMDetector(comp, ""), nil
	case "lingua":
		return language.NewLinguaDetector(), nil
	default:
		return nil, fmt.Errorf("unknown language detector %q", cfg.Detector)
	}
}
