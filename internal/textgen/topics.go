package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/language"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

const (
	topicsSampleSize = 10000

	topicsSystem = "You are an expert content analyst. Extract the main topics as strict JSON in %s."
	topicsPrompt = `Analyze the following video transcript and extract the 3-5 main topics.
Return the topics in %s.
Return ONLY a JSON array of strings, no other text.

Transcript:
%s`

	errDecodeTopics = "Failed to decode JSON"
)

func (s *implService) ExtractTopics(ctx context.Context, text, target string) (Topics, error) {
	name := language.Name(target)
	out, err := s.completion.Complete(ctx, completion.Request{
		System: fmt.Sprintf(topicsSystem, name),
		Prompt: fmt.Sprintf(topicsPrompt, name, transcript.Truncate(text, topicsSampleSize)),
	})
	if err != nil {
		return Topics{}, fmt.Errorf("extract topics: %w", err)
	}

	content := strings.TrimSpace(out)
	if m := reCodeFence.FindStringSubmatch(content); m != nil {
		content = strings.TrimSpace(m[1])
	}

	var topics []string
	if err := json.Unmarshal([]byte(content), &topics); err != nil {
		s.logger.Warn(ctx, "Topic extraction returned invalid JSON: %v", err)
		return Topics{Error: errDecodeTopics, RawContent: content}, nil
	}
	if topics == nil {
		topics = []string{}
	}
	return Topics{Topics: topics}, nil
}
