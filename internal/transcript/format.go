package transcript

import (
	"regexp"
	"strings"
)

const (
	// SilenceThreshold is the gap in seconds that opens a new paragraph
	SilenceThreshold = 0.25
	// MaxSegmentsPerParagraph caps how many captions share one paragraph
	MaxSegmentsPerParagraph = 5

	paragraphBreak = "\n\n"
)

var (
	reMissingSpace  = regexp.MustCompile(`([.!?])([^` + space + `])`)
	reSentenceEnd   = regexp.MustCompile(`([.!?])[` + space + `]+`)
	reExtraNewlines = regexp.MustCompile(`\n{3,}`)
)

// Format groups captions into readable paragraphs. With timing data a new
// paragraph starts on a pause longer than SilenceThreshold, after
// MaxSegmentsPerParagraph captions, or after a sentence-ending caption.
// Without timing data (or when no break was produced) paragraphs are split
// on sentence punctuation instead.
func Format(text string, segments []Segment) string {
	if paragraphs := groupParagraphs(segments); len(paragraphs) > 0 {
		text = strings.Join(paragraphs, paragraphBreak)
	}

	text = reMissingSpace.ReplaceAllString(text, "$1 $2")
	if !strings.Contains(text, paragraphBreak) {
		text = reSentenceEnd.ReplaceAllString(text, "$1"+paragraphBreak)
	}

	return reExtraNewlines.ReplaceAllString(text, paragraphBreak)
}

// groupParagraphs applies the timing rules; it returns nil when no segment
// survives cleaning.
func groupParagraphs(segments []Segment) []string {
	var (
		paragraphs []string
		current    []string
		count      int
		lastEnd    float64
	)

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
		count = 0
	}

	for _, seg := range segments {
		text := Clean(seg.Text)
		if text == "" {
			continue
		}

		kept := len(paragraphs) > 0 || len(current) > 0
		if kept && startsParagraph(seg.Start-lastEnd, count, current) {
			flush()
		}

		current = append(current, text)
		count++
		lastEnd = seg.End()
	}
	flush()

	return paragraphs
}

func startsParagraph(gap float64, count int, current []string) bool {
	if gap > SilenceThreshold {
		return true
	}
	if count >= MaxSegmentsPerParagraph {
		return true
	}
	if len(current) > 0 {
		last := strings.TrimRight(current[len(current)-1], " \t\r\n")
		if strings.HasSuffix(last, ".") || strings.HasSuffix(last, "!") || strings.HasSuffix(last, "?") {
			return true
		}
	}
	return false
}
