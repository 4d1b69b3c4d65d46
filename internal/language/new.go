package language

import (
	"github.com/pemistahl/lingua-go"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
)

type implLLMDetector struct {
	completion completion.Service
	model      string
}

// NewLLMDetector asks the completion service for the language code.
// An empty model uses the service default.
func NewLLMDetector(svc completion.Service, model string) Detector {
	return &implLLMDetector{completion: svc, model: model}
}

type implLinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector detects languages locally with statistical models for
// every language lingua supports. Building it loads the models lazily.
func NewLinguaDetector() Detector {
	return &implLinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build(),
	}
}
