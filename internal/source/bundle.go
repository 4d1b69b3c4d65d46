package source

import (
	"fmt"
	"regexp"

	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

// Bundle is the normalized scraper output for one video.
// YouTube bundles carry Captions and/or Text; Instagram bundles carry a
// MediaURL (possibly empty) and the post caption in Text.
type Bundle struct {
	Platform     Platform
	Title        string
	Channel      string
	ThumbnailURL string
	MediaURL     string
	FrameURLs    []string
	Captions     []transcript.Segment
	Text         string
}

// FallbackText is the plain text of the bundle: Text when set, otherwise
// the caption texts joined by spaces.
func (b Bundle) FallbackText() string {
	if b.Text != "" {
		return b.Text
	}
	return transcript.JoinText(b.Captions)
}

var reYouTubeID = regexp.MustCompile(`(?:v=|youtu\.be/|embed/|shorts/)([a-zA-Z0-9_-]{11})`)

// YouTubeID extracts the 11 character video id from a YouTube URL
func YouTubeID(url string) (string, bool) {
	m := reYouTubeID.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// youTubeImages returns the thumbnail and the four automatic frame captures
// YouTube publishes for every video.
func youTubeImages(id string) (string, []string) {
	frames := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		frames = append(frames, fmt.Sprintf("https://img.youtube.com/vi/%s/%d.jpg", id, i))
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id), frames
}
