package openaicompat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/personacolor/internal/domain/ai"
)

func serveCompletion(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + content + `}}]}`))
	}))
}

func TestAnalyzeParsesChoice(t *testing.T) {
	srv := serveCompletion(t, `"{\"palette_name\":\"Autumn Warm\",\"tags\":[\"earth\"]}"`)
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", 0)
	res, err := client.Analyze(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "Autumn Warm", res.PaletteName)
	assert.Equal(t, []string{"earth"}, res.Tags)
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", 0)
	_, err := client.Analyze(context.Background(), "prompt")

	assert.ErrorIs(t, err, ai.ErrProviderShape)
}

func TestAnalyzeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "test-model", 0)
	_, err := client.Analyze(context.Background(), "prompt")

	var te *ai.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusTooManyRequests, te.StatusCode)
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

	client := NewClient("test-key", srv.URL, "test-model", 50*time.Millisecond)

	start := time.Now()
	_, err := client.Analyze(context.Background(), "prompt")

	var te *ai.TransportError
	require.ErrorAs(t, err, &te)
	assert.Less(t, time.Since(start), time.Second, "call must give up at the configured bound")
}
