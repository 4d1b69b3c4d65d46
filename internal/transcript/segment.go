// Package transcript holds the pure text transformations applied to raw
// caption data: annotation cleaning and timing-aware paragraph formatting.
package transcript

import "strings"

// Segment is one timestamped caption unit. Times are in seconds.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"dur"`
}

// End returns the time the segment stops being spoken
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// JoinText concatenates segment texts with single spaces, in input order
func JoinText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// Truncate returns at most the first n characters (runes) of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
