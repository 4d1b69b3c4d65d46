package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/completion"
	"github.com/nguyentantai21042004/transcript-flow/internal/event"
	"github.com/nguyentantai21042004/transcript-flow/internal/source"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

const (
	defaultTitle   = "Video"
	defaultChannel = "Unknown"
)

// errConsumerGone stops a run whose reader went away
var errConsumerGone = errors.New("event consumer gone")

// run holds the state of one Stream call
type run struct {
	p     *implPipeline
	ctx   context.Context
	req   Request
	out   chan<- event.Event
	stage Stage
}

// Stream starts the run in its own goroutine
func (p *implPipeline) Stream(ctx context.Context, req Request) <-chan event.Event {
	out := make(chan event.Event)

	go func() {
		defer close(out)

		r := &run{p: p, ctx: ctx, req: req, out: out, stage: StageInit}
		startTime := time.Now()
		p.logger.Info(ctx, "Pipeline started: %s (target %s)", req.URL, req.target())

		err := r.execute()
		switch {
		case err == nil:
			p.logger.Info(ctx, "Pipeline completed in %s: %s", time.Since(startTime), req.URL)
		case errors.Is(err, errConsumerGone), ctx.Err() != nil:
			p.logger.Warn(ctx, "Pipeline abandoned at stage %s: %s", r.stage, req.URL)
		default:
			p.logger.Error(ctx, "Pipeline failed: %v", err)
			_ = r.emit(event.Error(errorMessage(err)))
		}
	}()

	return out
}

// errorMessage is the text carried by the terminal error event
func errorMessage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}

// emit hands ev to the consumer, blocking until it is taken
func (r *run) emit(ev event.Event) error {
	if r.ctx.Err() != nil {
		return errConsumerGone
	}
	select {
	case r.out <- ev:
		return nil
	case <-r.ctx.Done():
		return errConsumerGone
	}
}

func (r *run) status(msg string) error {
	return r.emit(event.Status(msg))
}

// fail wraps err with the current stage. Consumer loss passes through.
func (r *run) fail(err error) error {
	if errors.Is(err, errConsumerGone) {
		return errConsumerGone
	}
	return &StageError{Stage: r.stage, Err: err}
}

func (r *run) execute() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &StageError{Stage: r.stage, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if err := r.status("Initializing..."); err != nil {
		return err
	}

	r.stage = StageDetectPlatform
	ref, err := source.NewReference(r.req.URL)
	if err != nil {
		return r.fail(err)
	}

	r.stage = StageFetch
	if err := r.status(fetchMessage(ref.Platform)); err != nil {
		return err
	}
	bundle, err := r.p.deps.Fetcher.Fetch(r.ctx, ref)
	if err != nil {
		return r.fail(err)
	}
	if bundle.Platform == "" {
		bundle.Platform = ref.Platform
	}

	r.stage = StageNormalize
	var text string
	if bundle.Platform == source.PlatformYouTube {
		text = transcript.Clean(bundle.FallbackText())
	}
	if err := r.emit(event.MetadataEvent(metadataOf(bundle, r.req.URL))); err != nil {
		return err
	}

	r.stage = StageAcquire
	if text == "" {
		if text, err = r.acquire(bundle); err != nil {
			return r.fail(err)
		}
	}

	r.stage = StageDetectLanguage
	lang, err := r.p.deps.Detector.Detect(r.ctx, text)
	if err != nil {
		return r.fail(err)
	}
	if err := r.status("Detected language: " + lang); err != nil {
		return err
	}

	r.stage = StageFormat
	formatted, err := r.p.deps.Completion.Stream(r.ctx, completion.Request{Prompt: formatPrompt(text, lang)}, func(chunk string) error {
		return r.emit(event.Content(chunk))
	})
	if err != nil {
		return r.fail(err)
	}

	r.stage = StageParaphrase
	if err := r.status("Generating paraphrase..."); err != nil {
		return err
	}
	paraphrase, err := r.p.deps.Completion.Complete(r.ctx, completion.Request{Prompt: paraphrasePrompt(formatted, lang)})
	if err != nil {
		return r.fail(err)
	}
	if err := r.emit(event.Paraphrase(paraphrase)); err != nil {
		return err
	}

	target := r.req.target()
	if target != lang {
		r.stage = StageTranslate
		if err := r.status(fmt.Sprintf("Translating to %s...", target)); err != nil {
			return err
		}
		_, err := r.p.deps.Completion.Stream(r.ctx, completion.Request{Prompt: translatePrompt(formatted, target)}, func(chunk string) error {
			return r.emit(event.Translation(chunk))
		})
		if err != nil {
			return r.fail(err)
		}
	}

	r.stage = StageTags
	if err := r.status("Generating tags..."); err != nil {
		return err
	}
	answer, err := r.p.deps.Completion.Complete(r.ctx, completion.Request{Prompt: tagsPrompt(formatted, target)})
	if err != nil {
		return r.fail(err)
	}
	if err := r.emit(event.Tags(ParseTags(answer))); err != nil {
		return err
	}

	r.stage = StageDone
	return r.status(event.DoneMessage)
}

func fetchMessage(p source.Platform) string {
	if p == source.PlatformInstagram {
		return "Connecting to Instagram (slow)..."
	}
	return "Fetching YouTube data (this may take a moment)..."
}

func metadataOf(b source.Bundle, videoURL string) event.Metadata {
	m := event.Metadata{
		Title:        b.Title,
		Channel:      b.Channel,
		VideoURL:     videoURL,
		ThumbnailURL: b.ThumbnailURL,
		FrameURLs:    b.FrameURLs,
		Platform:     string(b.Platform),
	}
	if m.Title == "" {
		m.Title = defaultTitle
	}
	if m.Channel == "" {
		m.Channel = defaultChannel
	}
	return m
}
