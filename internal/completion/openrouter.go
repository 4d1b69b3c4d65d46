package completion

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// Complete sends a non-streaming chat completion
func (o *implOpenRouter) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.buildRequest(req))
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream sends a streaming chat completion and forwards every delta
func (o *implOpenRouter) Stream(ctx context.Context, req Request, onChunk func(string) error) (string, error) {
	chatReq := o.buildRequest(req)
	chatReq.Stream = true

	stream, err := o.client.CreateChatCompletionStream(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("create chat completion stream: %w", err)
	}
	defer stream.Close()

	var full []byte
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return string(full), fmt.Errorf("receive stream: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}

		chunk := resp.Choices[0].Delta.Content
		full = append(full, chunk...)
		if err := onChunk(chunk); err != nil {
			return string(full), err
		}
	}

	return string(full), nil
}

func (o *implOpenRouter) buildRequest(req Request) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = o.model
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.Attachment == nil {
		user.Content = req.Prompt
	} else {
		// Media goes in as a data URL in an image_url part; OpenRouter
		// forwards it to multimodal models regardless of the MIME type.
		dataURL := fmt.Sprintf("data:%s;base64,%s",
			req.Attachment.MIMEType, base64.StdEncoding.EncodeToString(req.Attachment.Data))
		user.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
		}
	}
	messages = append(messages, user)

	return openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
}
