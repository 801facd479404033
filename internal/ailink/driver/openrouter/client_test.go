package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizlens/vizlens/internal/ailink/driver"
)

func TestCompleteCarriesGatewayHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer router-key", r.Header.Get("Authorization"))
		require.Equal(t, "https://vizlens.example", r.Header.Get("HTTP-Referer"))
		require.Equal(t, "VizLens", r.Header.Get("X-Title"))

		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "router-key", "https://vizlens.example", "VizLens")
	resp, err := client.Complete(context.Background(), &driver.Request{
		Model:    "openrouter/auto",
		Messages: []driver.Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Content)
}

func TestCompleteOmitsOptionalHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasReferer := r.Header["Http-Referer"]
		require.False(t, hasReferer)
		require.Empty(t, r.Header.Get("X-Title"))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "router-key", "", "")
	_, err := client.Complete(context.Background(), &driver.Request{
		Model:    "openrouter/auto",
		Messages: []driver.Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
}

func TestCompleteRequiresAPIKey(t *testing.T) {
	client := NewClient("", "", "", "")
	_, err := client.Complete(context.Background(), &driver.Request{
		Model:    "openrouter/auto",
		Messages: []driver.Message{{Role: "user", Content: "hi"}},
	})
	require.ErrorContains(t, err, "api key is required")
}
