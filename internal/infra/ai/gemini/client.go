package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bryanwahyu/personacolor/internal/domain/ai"
)

const defaultTimeout = 30 * time.Second

// Client talks to a Gemini-style generateContent endpoint over plain HTTP.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Analyze posts the prompt and coerces the answer into an ai.Result.
// The gateway does no retries and no palette interpretation.
func (c *Client) Analyze(ctx context.Context, prompt string) (*ai.Result, error) {
	payload := map[string]any{
		"contents": []any{
			map[string]any{
				"parts": []any{
					map[string]any{"text": prompt},
				},
			},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ai.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ai.TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("gemini: non-json envelope: %s", snippet(body))
		return nil, ai.ErrProviderShape
	}

	text := ExtractText(envelope)
	if text == "" {
		// keep the raw envelope around, this is the only way to debug
		// provider format drift
		log.Printf("gemini: unrecognized envelope: %s", snippet(body))
		return nil, ai.ErrProviderShape
	}

	return ai.ParseResult(text), nil
}

func snippet(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

// Envelope shapes differ across providers and API versions, so extraction
// walks a rule table and takes the first non-empty hit.
type extractRule func(map[string]any) string

var textRules = []extractRule{
	candidatesText, // candidates[0].content.parts[0].text (Gemini)
	outputText,     // output[0].content[0].text (Responses API)
	choicesMessage, // choices[0].message.content (chat completions)
	choicesText,    // choices[0].text (legacy completions)
	flatText,       // {"text": "..."}
}

// ExtractText pulls the model's textual payload out of a provider
// envelope, or "" when no rule matches.
func ExtractText(envelope map[string]any) string {
	for _, rule := range textRules {
		if text := rule(envelope); text != "" {
			return text
		}
	}
	return ""
}

func candidatesText(env map[string]any) string {
	first := idx(env["candidates"], 0)
	parts := field(field(first, "content"), "parts")
	return asString(field(idx(parts, 0), "text"))
}

func outputText(env map[string]any) string {
	first := idx(env["output"], 0)
	return asString(field(idx(field(first, "content"), 0), "text"))
}

func choicesMessage(env map[string]any) string {
	first := idx(env["choices"], 0)
	return asString(field(field(first, "message"), "content"))
}

func choicesText(env map[string]any) string {
	return asString(field(idx(env["choices"], 0), "text"))
}

func flatText(env map[string]any) string {
	return asString(env["text"])
}

func idx(v any, i int) any {
	arr, ok := v.([]any)
	if !ok || i >= len(arr) {
		return nil
	}
	return arr[i]
}

func field(v any, k string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m[k]
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
