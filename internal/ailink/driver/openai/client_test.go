package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizlens/vizlens/internal/ailink/driver"
)

func TestCompleteSendsChatRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "gpt-4o-mini", payload["model"])
		require.Equal(t, 0.7, payload["temperature"])
		require.Equal(t, float64(2000), payload["max_tokens"])
		messages := payload["messages"].([]any)
		require.Len(t, messages, 2)

		fmt.Fprint(w, `{
			"choices":[{"message":{"content":"Instagram is verified via website"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":100,"completion_tokens":20,"total_tokens":120}
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	temperature := 0.7
	maxTokens := 2000

	resp, err := client.Complete(context.Background(), &driver.Request{
		Model: "gpt-4o-mini",
		Messages: []driver.Message{
			{Role: "system", Content: "verify"},
			{Role: "user", Content: "candidates"},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)
	require.Equal(t, "Instagram is verified via website", resp.Content)
	require.Equal(t, "stop", resp.FinishReason)
	require.Equal(t, 120, resp.Usage.TotalTokens)
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	client := NewClient("", "")
	_, err := client.Complete(context.Background(), &driver.Request{
		Model:    "gpt-4o-mini",
		Messages: []driver.Message{{Role: "user", Content: "hi"}},
	})
	require.ErrorContains(t, err, "api key is required")
}

func TestCompleteSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limit"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.Complete(context.Background(), &driver.Request{
		Model:    "gpt-4o-mini",
		Messages: []driver.Message{{Role: "user", Content: "hi"}},
	})

	var provErr *driver.ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "openai", provErr.Provider)
	require.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
}

func TestCompleteValidatesRequest(t *testing.T) {
	client := NewClient("", "key")

	_, err := client.Complete(context.Background(), &driver.Request{
		Messages: []driver.Message{{Role: "user", Content: "hi"}},
	})
	require.ErrorContains(t, err, "model is required")

	_, err = client.Complete(context.Background(), &driver.Request{Model: "gpt-4o-mini"})
	require.ErrorContains(t, err, "messages are required")
}
