package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

// PlacesClient is a thin client for the Google Places text-search and
// details endpoints.
type PlacesClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// PlaceCandidate is one text-search hit.
type PlaceCandidate struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
}

type textSearchResponse struct {
	Status  string           `json:"status"`
	Results []PlaceCandidate `json:"results"`
}

// PlaceDetails is the details payload for one place.
type PlaceDetails struct {
	Name                 string   `json:"name"`
	FormattedAddress     string   `json:"formatted_address"`
	FormattedPhoneNumber string   `json:"formatted_phone_number"`
	Rating               *float64 `json:"rating"`
	UserRatingsTotal     *int     `json:"user_ratings_total"`
}

type detailsResponse struct {
	Status string        `json:"status"`
	Result *PlaceDetails `json:"result"`
}

// Configured reports whether an API key is present.
func (c *PlacesClient) Configured() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

// TextSearch runs a places text search and returns the raw candidates.
func (c *PlacesClient) TextSearch(ctx context.Context, query string) ([]PlaceCandidate, error) {
	var parsed textSearchResponse
	params := url.Values{"query": {query}}
	if err := c.get(ctx, "/textsearch/json", params, &parsed); err != nil {
		return nil, err
	}
	if parsed.Status != "OK" {
		return nil, fmt.Errorf("text search status %s", parsed.Status)
	}
	return parsed.Results, nil
}

// Details fetches the detail fields for a place.
func (c *PlacesClient) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	var parsed detailsResponse
	params := url.Values{
		"place_id": {placeID},
		"fields":   {"name,formatted_address,formatted_phone_number,rating,user_ratings_total"},
	}
	if err := c.get(ctx, "/details/json", params, &parsed); err != nil {
		return nil, err
	}
	if parsed.Status != "OK" || parsed.Result == nil {
		return nil, fmt.Errorf("details status %s", parsed.Status)
	}
	return parsed.Result, nil
}

func (c *PlacesClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.Configured() {
		return fmt.Errorf("places api key is not configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = defaultPlacesBaseURL
	}
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
