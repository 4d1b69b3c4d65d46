package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/event"
)

// DefaultTargetLanguage is used when a request leaves the target empty
const DefaultTargetLanguage = "en"

// Pipeline turns a video URL into transcript artifacts.
type Pipeline interface {
	// Stream runs every stage and delivers progress as events. The channel
	// is unbuffered and closed after the terminal event (an error or the
	// "Done!" status). Cancelling ctx stops the run without further events.
	Stream(ctx context.Context, req Request) <-chan event.Event
	// Transcribe returns the cleaned, paragraph-formatted transcript without
	// the LLM formatting stages.
	Transcribe(ctx context.Context, req Request) (Transcript, error)
}

// Request identifies the video and the language derived artifacts are
// wanted in.
type Request struct {
	URL            string
	TargetLanguage string
}

func (r Request) target() string {
	if r.TargetLanguage == "" {
		return DefaultTargetLanguage
	}
	return r.TargetLanguage
}

// Transcript is the result of a non-streaming transcription
type Transcript struct {
	Title        string   `json:"title"`
	Channel      string   `json:"channel"`
	Text         string   `json:"transcript"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	FrameURLs    []string `json:"frame_urls"`
	Language     string   `json:"language"`
	Platform     string   `json:"platform"`
}
