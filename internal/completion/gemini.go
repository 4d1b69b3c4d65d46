package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Complete generates content with the current key, rotating keys on 429 /
// quota errors until every key has been tried once.
func (g *implGemini) Complete(ctx context.Context, req Request) (string, error) {
	var text string
	err := g.withKeyRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, g.modelFor(req), g.contents(req), g.generateConfig(req))
		if err != nil {
			return err
		}
		text = result.Text()
		if text == "" {
			return ErrEmptyResponse
		}
		return nil
	})
	return text, err
}

// Stream generates content as a stream. Keys are only rotated before the
// first chunk has been delivered.
func (g *implGemini) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	var full strings.Builder
	err := g.withKeyRotation(ctx, func(client *genai.Client) error {
		for result, err := range client.Models.GenerateContentStream(ctx, g.modelFor(req), g.contents(req), g.generateConfig(req)) {
			if err != nil {
				if full.Len() > 0 {
					return errStreamBroken{err}
				}
				return err
			}
			chunk := result.Text()
			if chunk == "" {
				continue
			}
			full.WriteString(chunk)
			if err := onChunk(chunk); err != nil {
				return errStreamBroken{err}
			}
		}
		return nil
	})

	var broken errStreamBroken
	if errors.As(err, &broken) {
		return full.String(), broken.err
	}
	return full.String(), err
}

// errStreamBroken marks failures that must not be retried with another key
type errStreamBroken struct{ err error }

func (e errStreamBroken) Error() string { return e.err.Error() }

func (g *implGemini) withKeyRotation(ctx context.Context, call func(client *genai.Client) error) error {
	if len(g.apiKeys) == 0 {
		return errors.New("no Gemini API keys configured")
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      key,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  g.httpClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		err = call(client)
		if err == nil {
			return nil
		}
		if isRateLimited(err) {
			g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
			g.rotateKey(idx)
			lastErr = err
			continue
		}
		var broken errStreamBroken
		if errors.As(err, &broken) || errors.Is(err, ErrEmptyResponse) {
			return err
		}
		return fmt.Errorf("generate content: %w", err)
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another call already did
func (g *implGemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (g *implGemini) modelFor(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return g.model
}

func (g *implGemini) contents(req Request) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Attachment != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Attachment.Data, req.Attachment.MIMEType))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func (g *implGemini) generateConfig(req Request) *genai.GenerateContentConfig {
	if req.System == "" && req.MaxTokens == 0 {
		return nil
	}
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	return cfg
}
