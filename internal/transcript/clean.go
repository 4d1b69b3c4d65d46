package transcript

import (
	"regexp"
	"strings"
)

// space matches any Unicode whitespace character. RE2's \s is ASCII only
// and captions often carry no-break and ideographic spaces.
const space = `\s\x0B\x1C-\x1F\x{85}\p{Z}`

var (
	// (?s): annotations may span line breaks
	reBracketed     = regexp.MustCompile(`(?s)\[.*?\]`)
	reParenthesized = regexp.MustCompile(`(?s)\(.*?\)`)
	reWhitespace    = regexp.MustCompile(`[` + space + `]+`)
)

// Clean strips [bracketed] and (parenthesized) annotations such as [Music]
// and collapses whitespace. Spoken text inside parentheses is removed too.
func Clean(text string) string {
	text = reBracketed.ReplaceAllString(text, "")
	text = reParenthesized.ReplaceAllString(text, "")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanSegments returns the segments with cleaned text, dropping the ones
// left empty. The input slice is not modified.
func CleanSegments(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		s.Text = Clean(s.Text)
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
