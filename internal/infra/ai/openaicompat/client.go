package openaicompat

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/personacolor/internal/domain/ai"
)

const (
	maxTokens      = 1024
	defaultTimeout = 30 * time.Second
)

// Client adapts an OpenAI-compatible chat completion endpoint to the
// ai.Client port. Used when config selects provider "openai".
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// same request bound as the gemini client; a stalled provider must not
	// pin the request goroutine
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Analyze(ctx context.Context, prompt string) (*ai.Result, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ai.TransportError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
		}
		return nil, &ai.TransportError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, ai.ErrProviderShape
	}

	return ai.ParseResult(resp.Choices[0].Message.Content), nil
}
