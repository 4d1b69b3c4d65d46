package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/source"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

// Transcribe fetches the video and formats its captions by timing gaps.
// Language detection is best effort; an unknown language is left empty.
func (p *implPipeline) Transcribe(ctx context.Context, req Request) (Transcript, error) {
	ref, err := source.NewReference(req.URL)
	if err != nil {
		return Transcript{}, &StageError{Stage: StageDetectPlatform, Err: err}
	}

	p.logger.Info(ctx, "Transcribing %s video: %s", ref.Platform, req.URL)

	bundle, err := p.deps.Fetcher.Fetch(ctx, ref)
	if err != nil {
		return Transcript{}, &StageError{Stage: StageFetch, Err: err}
	}

	text := transcript.Clean(bundle.FallbackText())
	captions := transcript.CleanSegments(bundle.Captions)

	title := bundle.Title
	if title == "" {
		title = p.deps.Text.GenerateTitle(ctx, text)
	}
	channel := bundle.Channel
	if channel == "" {
		channel = defaultChannel
	}

	var lang string
	if text != "" {
		if lang, err = p.deps.Detector.Detect(ctx, text); err != nil {
			p.logger.Warn(ctx, "Language detection failed: %v", err)
			lang = ""
		}
	}

	frames := bundle.FrameURLs
	if frames == nil {
		frames = []string{}
	}

	return Transcript{
		Title:        title,
		Channel:      channel,
		Text:         transcript.Format(text, captions),
		VideoURL:     req.URL,
		ThumbnailURL: bundle.ThumbnailURL,
		FrameURLs:    frames,
		Language:     lang,
		Platform:     string(bundle.Platform),
	}, nil
}
