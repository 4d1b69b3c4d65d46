package pipeline

import (
	"errors"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/source"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

// strategy produces transcript text or an error explaining why it was
// skipped. Only errConsumerGone aborts the chain.
type strategy struct {
	name string
	run  func(b source.Bundle) (string, error)
}

var errNotApplicable = errors.New("not applicable")

// acquire walks the degradation chain: video transcription, then the
// cleaned caption, then a fixed placeholder. It never fails on its own.
func (r *run) acquire(b source.Bundle) (string, error) {
	chain := []strategy{
		{name: "video", run: r.fromVideo},
		{name: "caption", run: fromCaption},
		{name: "placeholder", run: func(source.Bundle) (string, error) { return placeholderText, nil }},
	}

	for _, s := range chain {
		text, err := s.run(b)
		if errors.Is(err, errConsumerGone) {
			return "", err
		}
		if err != nil {
			if !errors.Is(err, errNotApplicable) {
				r.p.logger.Warn(r.ctx, "Acquisition strategy %s skipped: %v", s.name, err)
			}
			continue
		}
		if text == "" {
			r.p.logger.Debug(r.ctx, "Acquisition strategy %s produced no text", s.name)
			continue
		}
		r.p.logger.Info(r.ctx, "Transcript acquired via %s strategy", s.name)
		return text, nil
	}

	return placeholderText, nil
}

func (r *run) fromVideo(b source.Bundle) (string, error) {
	if b.Platform != source.PlatformInstagram || b.MediaURL == "" || r.p.deps.Transcriber == nil {
		return "", errNotApplicable
	}

	if err := r.status("Downloading video for AI analysis..."); err != nil {
		return "", err
	}
	media, err := r.p.deps.Downloader.Download(r.ctx, b.MediaURL, r.p.maxMediaBytes)
	if errors.Is(err, source.ErrMediaTooLarge) {
		if err := r.status("Video too large for deep analysis, using caption..."); err != nil {
			return "", err
		}
		return "", err
	}
	if err != nil {
		return "", err
	}

	if err := r.status("AI is watching and transcribing (this takes a moment)..."); err != nil {
		return "", err
	}
	text, err := r.p.deps.Transcriber.Complete(r.ctx, completion.Request{
		Model:      r.p.transcriptionModel,
		Prompt:     videoTranscribePrompt,
		Attachment: &completion.Attachment{MIMEType: media.MIMEType, Data: media.Data},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func fromCaption(b source.Bundle) (string, error) {
	return transcript.Clean(b.FallbackText()), nil
}
