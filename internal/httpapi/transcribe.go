package httpapi

import (
	"bufio"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/transcript-flow/internal/event"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/source"
)

// URL is not checked for a scheme: "youtu.be/..." is a valid link, and the
// pipeline reports unsupported ones as an error event.
type transcribeRequest struct {
	URL            string `json:"url" validate:"required"`
	TargetLanguage string `json:"target_language" validate:"omitempty,min=2,max=16"`
}

// transcribeStream runs the full pipeline and streams its events as NDJSON.
// A failed write cancels the run.
func (h *Handler) transcribeStream(c *fiber.Ctx) error {
	var req transcribeRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	// The body is written after the handler returns, so the run must
	// outlive the request context while keeping its values.
	ctx, cancel := context.WithCancel(context.WithoutCancel(c.UserContext()))
	events := h.pipeline.Stream(ctx, pipeline.Request{URL: req.URL, TargetLanguage: req.TargetLanguage})

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		enc := event.NewEncoder(w)
		for ev := range events {
			if err := enc.Encode(ev); err != nil {
				h.logger.Warn(ctx, "Stream client disconnected: %v", err)
				cancel()
				for range events {
				}
				return
			}
		}
	})
	return nil
}

// transcribe returns the timing-formatted transcript in one response
func (h *Handler) transcribe(c *fiber.Ctx) error {
	var req transcribeRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	t, err := h.pipeline.Transcribe(ctx, pipeline.Request{URL: req.URL, TargetLanguage: req.TargetLanguage})
	if err != nil {
		h.logger.Error(ctx, "Error extracting transcript: %v", err)
		if errors.Is(err, source.ErrUnsupportedPlatform) {
			return RespondWithError(c, fiber.StatusBadRequest, source.ErrUnsupportedPlatform.Error())
		}
		return RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(t)
}
