package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/keyday/llmbench/pkg/api"
)

// Client fetches the provider listing from an OpenRouter-compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new listing Client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	// Normalize: remove trailing slash from base URL.
	baseURL = strings.TrimRight(baseURL, "/")

	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// ListModels returns the raw provider listing from the /models endpoint.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	url := c.baseURL + "/models"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating listing request: %w", err)
	}

	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider listing unavailable: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider listing unavailable (HTTP %d)", httpResp.StatusCode)
	}

	var listResp ListModelsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("parsing provider listing: %w", err)
	}

	return listResp.Data, nil
}

// ListEligible fetches the listing and applies the exclusion and free-model
// filters. An empty result is not an error: it signals "no eligible
// providers" to the caller.
func (c *Client) ListEligible(ctx context.Context, excluded map[string]struct{}) (map[string]api.ProviderRecord, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return FilterFree(models, excluded), nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
