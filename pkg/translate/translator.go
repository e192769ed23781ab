package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator converts text between two natural languages. Implementations
// must be safe for concurrent use by multiple goroutines.
type Translator interface {
	// Translate returns text translated from the source to the target
	// language (ISO 639-1 codes).
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// GoogleClient translates through the public Google translate endpoint.
type GoogleClient struct {
	httpClient *http.Client
	baseURL    string
}

var _ Translator = (*GoogleClient)(nil)

// NewGoogleClient creates a translation client.
func NewGoogleClient(baseURL string, timeout time.Duration) *GoogleClient {
	baseURL = strings.TrimRight(baseURL, "/")

	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &GoogleClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Translate calls the /translate_a/single endpoint and joins the returned
// segments into one string.
func (c *GoogleClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	reqURL := c.baseURL + "/translate_a/single?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating translation request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("translation service unavailable: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", fmt.Errorf("translation service error (HTTP %d)", httpResp.StatusCode)
	}

	var payload []any
	if err := json.NewDecoder(httpResp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("parsing translation response: %w", err)
	}

	translated, ok := joinSegments(payload)
	if !ok {
		return "", fmt.Errorf("translation response carried no segments")
	}
	return translated, nil
}

// joinSegments extracts the translated text from the nested-array response
// format: the first element is a list of segments, each segment's first
// element is the translated chunk.
func joinSegments(payload []any) (string, bool) {
	if len(payload) == 0 {
		return "", false
	}
	segments, ok := payload[0].([]any)
	if !ok {
		return "", false
	}

	var b strings.Builder
	found := false
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		chunk, ok := parts[0].(string)
		if !ok {
			continue
		}
		b.WriteString(chunk)
		found = true
	}

	if !found || strings.TrimSpace(b.String()) == "" {
		return "", false
	}
	return b.String(), true
}

// Close releases client resources.
func (c *GoogleClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
