package textgen

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

const (
	DefaultTitle = "Video Transcript"

	minTitleInput   = 50
	titleSampleSize = 500
	titleMaxTokens  = 50

	titlePrompt = `Generate a short, engaging video title (max 8 words) based on this transcript snippet.
Return ONLY the title, no quotes or extra text.

Transcript: %s`
)

func (s *implService) GenerateTitle(ctx context.Context, text string) string {
	if utf8.RuneCountInString(text) < minTitleInput {
		return DefaultTitle
	}

	out, err := s.completion.Complete(ctx, completion.Request{
		Prompt:    fmt.Sprintf(titlePrompt, transcript.Truncate(text, titleSampleSize)),
		MaxTokens: titleMaxTokens,
	})
	if err != nil {
		s.logger.Warn(ctx, "Title generation failed: %v", err)
		return DefaultTitle
	}

	title := strings.ReplaceAll(strings.TrimSpace(out), `"`, "")
	if title == "" {
		return DefaultTitle
	}
	return title
}
