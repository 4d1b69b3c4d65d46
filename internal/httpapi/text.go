package httpapi

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const defaultTopicsLanguage = "it"

type translateRequest struct {
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"target_language" validate:"required,min=2,max=16"`
}

type topicsRequest struct {
	Transcript     string `json:"transcript" validate:"required"`
	TargetLanguage string `json:"target_language" validate:"omitempty,min=2,max=16"`
}

func (h *Handler) translate(c *fiber.Ctx) error {
	var req translateRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	h.logger.Info(ctx, "Translating to: %s", req.TargetLanguage)

	out, err := h.text.Translate(ctx, req.Text, req.TargetLanguage)
	if err != nil {
		h.logger.Error(ctx, "Error translating: %v", err)
		return RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"translated_text": out})
}

// translateStream streams plain text chunks. Failures after the response
// has started are reported inline as "Error: ...".
func (h *Handler) translateStream(c *fiber.Ctx) error {
	var req translateRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.UserContext()))
	h.logger.Info(ctx, "Streaming translation to: %s", req.TargetLanguage)

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		_, err := h.text.TranslateStream(ctx, req.Text, req.TargetLanguage, func(chunk string) error {
			if _, err := w.WriteString(chunk); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			h.logger.Error(ctx, "Streaming error: %v", err)
			fmt.Fprintf(w, "Error: %v", err)
			_ = w.Flush()
		}
	})
	return nil
}

func (h *Handler) topics(c *fiber.Ctx) error {
	var req topicsRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = defaultTopicsLanguage
	}

	ctx := c.UserContext()
	topics, err := h.text.ExtractTopics(ctx, req.Transcript, req.TargetLanguage)
	if err != nil {
		h.logger.Error(ctx, "Error extracting topics: %v", err)
		return RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}

	if topics.Error != "" {
		return c.JSON(fiber.Map{"error": topics.Error, "raw_content": topics.RawContent})
	}
	return c.JSON(fiber.Map{"topics": topics.Topics})
}
