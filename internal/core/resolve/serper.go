package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultSerperBaseURL = "https://google.serper.dev"

// SerperClient is a thin client for the serper.dev Google search API.
type SerperClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// OrganicResult is one organic search hit.
type OrganicResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SearchResponse is the subset of the serper payload the resolvers use.
type SearchResponse struct {
	Organic []OrganicResult `json:"organic"`
}

// Configured reports whether an API key is present.
func (c *SerperClient) Configured() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

// Search issues a search query with an optional country bias.
func (c *SerperClient) Search(ctx context.Context, query, country string) (*SearchResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("serper api key is not configured")
	}

	payload := map[string]string{"q": query}
	if country != "" {
		payload["gl"] = country
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = defaultSerperBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper returned status %d", resp.StatusCode)
	}

	var parsed SearchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &parsed, nil
}
