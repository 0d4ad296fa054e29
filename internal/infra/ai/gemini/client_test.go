package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/personacolor/internal/domain/ai"
)

func serveEnvelope(t *testing.T, envelope map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.Header.Get("x-goog-api-key") == "" {
			t.Fatal("missing api key header")
		}
		if err := json.NewEncoder(w).Encode(envelope); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
}

func TestAnalyzeCandidatesEnvelope(t *testing.T) {
	srv := serveEnvelope(t, map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"text": `{"palette_name":"Autumn Warm","tags":["earth"]}`},
					},
				},
			},
		},
	})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	res, err := client.Analyze(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Autumn Warm", res.PaletteName)
	assert.Equal(t, []string{"earth"}, res.Tags)
}

func TestAnalyzeChoicesTextEnvelope(t *testing.T) {
	srv := serveEnvelope(t, map[string]any{
		"choices": []any{
			map[string]any{"text": `{"palette_name":"Winter Cool"}`},
		},
	})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	res, err := client.Analyze(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Winter Cool", res.PaletteName)
}

func TestAnalyzeChoicesMessageEnvelope(t *testing.T) {
	srv := serveEnvelope(t, map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"content": `{"palette_name":"Summer Cool"}`},
			},
		},
	})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	res, err := client.Analyze(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Summer Cool", res.PaletteName)
}

func TestAnalyzeFlatTextEnvelope(t *testing.T) {
	srv := serveEnvelope(t, map[string]any{"text": `{"palette_name":"Spring Warm"}`})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	res, err := client.Analyze(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Spring Warm", res.PaletteName)
}

func TestAnalyzeUnrecognizedEnvelope(t *testing.T) {
	srv := serveEnvelope(t, map[string]any{"weird": "shape"})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	_, err := client.Analyze(context.Background(), "prompt")

	assert.ErrorIs(t, err, ai.ErrProviderShape)
}

func TestAnalyzeNonJSONModelText(t *testing.T) {
	srv := serveEnvelope(t, map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"text": "sorry, I cannot comply"},
					},
				},
			},
		},
	})
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	res, err := client.Analyze(context.Background(), "prompt")
	require.NoError(t, err, "unparseable model text is a degraded result, not a failure")

	assert.True(t, res.Unparsed())
	assert.Equal(t, "sorry, I cannot comply", res.RawText)
}

func TestAnalyzeHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 0)
	_, err := client.Analyze(context.Background(), "prompt")

	var te *ai.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.Contains(t, te.Body, "overloaded")
}

func TestAnalyzeConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the call

	client := NewClient(srv.URL, "test-key", time.Second)
	_, err := client.Analyze(context.Background(), "prompt")

	var te *ai.TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
}

func TestAnalyzeTimeoutBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// stall until the client gives up
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 50*time.Millisecond)

	start := time.Now()
	_, err := client.Analyze(context.Background(), "prompt")

	var te *ai.TransportError
	require.ErrorAs(t, err, &te)
	assert.Less(t, time.Since(start), time.Second, "call must give up at the configured bound")
}

func TestExtractTextRulePriority(t *testing.T) {
	// candidates path wins over flat text when both exist
	env := map[string]any{
		"text": "flat",
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": "nested"}},
				},
			},
		},
	}
	assert.Equal(t, "nested", ExtractText(env))
}
