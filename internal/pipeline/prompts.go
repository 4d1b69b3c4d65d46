package pipeline

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/language"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

const (
	formatSampleSize     = 8000
	paraphraseSampleSize = 5000
	translateSampleSize  = 5000
	tagsSampleSize       = 3000

	placeholderText = "Transcription unavailable."

	videoTranscribePrompt = "Transcribe the spoken words in this video exactly. If there are captions or text overlays, use them as hints. Return ONLY the spoken words as a transcript."
)

func formatPrompt(text, lang string) string {
	return fmt.Sprintf(`Format the following raw video transcript into a readable, human-friendly article.
Add frequent double line breaks for readability.
Preserve the core meaning and the ORIGINAL language of the transcript (%s).
DO NOT TRANSLATE. Respond ONLY in the original language.
Return ONLY the formatted text.

Transcript:
%s`, lang, transcript.Truncate(text, formatSampleSize))
}

func paraphrasePrompt(formatted, lang string) string {
	return fmt.Sprintf(`Paraphrase the following transcript strictly in its ORIGINAL LANGUAGE (%s).
Keep it professional and engaging. DO NOT TRANSLATE.

Transcript:
%s`, lang, transcript.Truncate(formatted, paraphraseSampleSize))
}

func translatePrompt(formatted, target string) string {
	return fmt.Sprintf("Translate the following text to %s. Preserve formatting.\n\nText:\n%s",
		language.Name(target), transcript.Truncate(formatted, translateSampleSize))
}

func tagsPrompt(formatted, target string) string {
	return fmt.Sprintf(`Generate 5-10 relevant SEO tags/keywords for this video content in %s.
Return ONLY as a comma-separated list of keywords.

Content:
%s`, language.Name(target), transcript.Truncate(formatted, tagsSampleSize))
}

// ParseTags splits a comma separated model answer, dropping blanks
func ParseTags(answer string) []string {
	tags := []string{}
	for _, t := range strings.Split(answer, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
