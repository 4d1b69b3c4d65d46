package language

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

// SampleSize is the number of characters used for detection
const SampleSize = 500

// ErrUndetected is returned by the lingua detector for text it cannot classify
var ErrUndetected = errors.New("language could not be detected")

const detectPrompt = "Detect the language of the following text. Return ONLY the ISO 639-1 code (e.g., 'en', 'it', 'fr').\n\nText:\n%s"

func (d *implLLMDetector) Detect(ctx context.Context, text string) (string, error) {
	answer, err := d.completion.Complete(ctx, completion.Request{
		Model:  d.model,
		Prompt: fmt.Sprintf(detectPrompt, transcript.Truncate(text, SampleSize)),
	})
	if err != nil {
		return "", fmt.Errorf("detect language: %w", err)
	}

	// A blank or verbose answer is normalized, never rejected
	return Normalize(answer), nil
}

func (d *implLinguaDetector) Detect(_ context.Context, text string) (string, error) {
	lang, ok := d.detector.DetectLanguageOf(transcript.Truncate(text, SampleSize))
	if !ok {
		return "", ErrUndetected
	}
	return Normalize(lang.IsoCode639_1().String()), nil
}

// Normalize trims and lower-cases a model answer and keeps its first two
// characters.
func Normalize(answer string) string {
	return transcript.Truncate(strings.ToLower(strings.TrimSpace(answer)), 2)
}
