package textgen

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/language"
)

const (
	plainInstruction = "Preserve the original formatting (line breaks, paragraphs). Return ONLY the translated text, no explanations."
	jsonInstruction  = "The input is a JSON string. Translate ONLY the values (text content), NOT the keys. Maintain the exact JSON structure and syntax. Return ONLY the translated JSON string, no other text."

	translatePrompt = "Translate the following content to %s.\n%s\n\nContent to translate:\n%s"
	streamPrompt    = "Translate the following text to %s.\nPreserve original formatting. Return ONLY translated text.\n\nText:\n%s"
)

var (
	reCodeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	reJSONSpan  = regexp.MustCompile(`(?s)[\{\[].*[\}\]]`)
)

func (s *implService) Translate(ctx context.Context, text, target string) (string, error) {
	isJSON := looksLikeJSON(text)
	instruction := plainInstruction
	if isJSON {
		instruction = jsonInstruction
	}

	out, err := s.completion.Complete(ctx, completion.Request{
		Prompt: fmt.Sprintf(translatePrompt, language.Name(target), instruction, text),
	})
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target, err)
	}

	if isJSON {
		out = extractJSON(out)
	}
	return out, nil
}

func (s *implService) TranslateStream(ctx context.Context, text, target string, onChunk func(string) error) (string, error) {
	out, err := s.completion.Stream(ctx, completion.Request{
		Prompt: fmt.Sprintf(streamPrompt, language.Name(target), text),
	}, onChunk)
	if err != nil {
		return out, fmt.Errorf("translate stream to %s: %w", target, err)
	}
	return out, nil
}

func looksLikeJSON(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")
}

// extractJSON strips markdown fences and chatter around a JSON answer
func extractJSON(out string) string {
	if m := reCodeFence.FindStringSubmatch(out); m != nil {
		out = strings.TrimSpace(m[1])
	}
	if m := reJSONSpan.FindString(out); m != "" {
		return m
	}
	return out
}
