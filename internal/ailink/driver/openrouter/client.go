// Package openrouter implements the completion driver for the OpenRouter
// gateway. It speaks the OpenAI-compatible chat completions shape but
// targets openrouter.ai and carries the gateway's attribution headers.
package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vizlens/vizlens/internal/ailink/driver"
	"github.com/vizlens/vizlens/internal/ailink/driver/openai"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client implements the OpenRouter driver.
type Client struct {
	BaseURL    string
	APIKey     string
	SiteURL    string
	AppTitle   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient returns a client with defaults applied. siteURL and appTitle
// are optional OpenRouter ranking headers.
func NewClient(baseURL, apiKey, siteURL, appTitle string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	return &Client{
		BaseURL:  url,
		APIKey:   strings.TrimSpace(apiKey),
		SiteURL:  strings.TrimSpace(siteURL),
		AppTitle: strings.TrimSpace(appTitle),
		Timeout:  120 * time.Second,
	}
}

// Name returns the driver identifier.
func (c *Client) Name() string {
	return "openrouter"
}

// Complete sends a chat completion request through the gateway.
func (c *Client) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("openrouter client not configured")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.APIKey,
		"Content-Type":  "application/json",
	}
	if c.SiteURL != "" {
		headers["HTTP-Referer"] = c.SiteURL
	}
	if c.AppTitle != "" {
		headers["X-Title"] = c.AppTitle
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	return openai.CompleteChat(ctx, "openrouter", url, headers, c.HTTPClient, c.Timeout, req)
}
