package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/keyday/llmbench/pkg/api"
	"github.com/keyday/llmbench/pkg/observability"
)

// Config holds the settings for a query Client.
type Config struct {
	// BaseURL is the API root (the client appends /chat/completions).
	BaseURL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// Timeout bounds one HTTP request. Default: 120s.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after a retryable
	// status. The client makes at most MaxRetries+1 attempts.
	MaxRetries int

	// InitialBackoff is the wait before the first retry; each further
	// retry doubles it.
	InitialBackoff time.Duration
}

// Client performs chat completion requests with bounded retry.
type Client struct {
	cfg        Config
	httpClient *http.Client

	// Sleep overrides the backoff sleep. If nil, time.Sleep is used.
	// Intended for tests.
	Sleep func(time.Duration)
}

// New creates a new query Client. Returns an error if the configuration is
// invalid.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("query: BaseURL is required")
	}

	// Normalize: remove trailing slash from base URL.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// Complete sends the prompt to one provider and returns the terminal
// outcome. The attempts count is valid on both paths; on failure the error
// is always an *api.QueryError.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (comp *Completion, attempts int, err error) {
	body, merr := json.Marshal(ChatCompletionRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt + "."},
		},
		MaxTokens: maxTokens,
	})
	if merr != nil {
		return nil, 0, api.NewTransportError(fmt.Sprintf("failed to marshal request: %s", merr.Error()))
	}

	url := c.cfg.BaseURL + "/chat/completions"

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		attempts = attempt + 1
		slog.Debug("sending provider request", "model", model, "attempt", attempts)

		httpReq, rerr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if rerr != nil {
			return nil, attempts, api.NewTransportError(fmt.Sprintf("failed to create HTTP request: %s", rerr.Error()))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		httpResp, derr := c.httpClient.Do(httpReq)
		if derr != nil {
			return nil, attempts, api.NewTransportError(fmt.Sprintf("backend connection error: %s", derr.Error()))
		}

		if retryableStatus(httpResp.StatusCode) {
			io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
			httpResp.Body.Close()

			if attempt == c.cfg.MaxRetries {
				break
			}

			wait := c.cfg.InitialBackoff * (1 << attempt)
			slog.Warn("retryable backend status",
				"model", model,
				"status", httpResp.StatusCode,
				"wait", wait,
			)
			observability.ProviderRetriesTotal.WithLabelValues(model).Inc()
			c.sleep(wait)
			continue
		}

		comp, qerr := c.handleResponse(model, httpResp)
		if qerr != nil {
			return nil, attempts, qerr
		}
		return comp, attempts, nil
	}

	return nil, c.cfg.MaxRetries + 1, api.NewRetriesExhaustedError(
		fmt.Sprintf("failed after %d attempts", c.cfg.MaxRetries+1))
}

// handleResponse classifies a non-retryable HTTP response.
func (c *Client) handleResponse(model string, httpResp *http.Response) (*Completion, *api.QueryError) {
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		message := extractErrorMessage(httpResp.Body)
		if message == "" {
			message = fmt.Sprintf("backend error (HTTP %d)", httpResp.StatusCode)
		} else {
			message = fmt.Sprintf("backend error (HTTP %d): %s", httpResp.StatusCode, message)
		}
		return nil, api.NewTransportError(message)
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&chatResp); err != nil {
		return nil, api.NewMalformedResponseError(
			fmt.Sprintf("invalid JSON response from model %s: %s", model, err.Error()))
	}

	if len(chatResp.Choices) == 0 {
		return nil, api.NewEmptyResponseError("response contained no choices")
	}

	content := chatResp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, api.NewEmptyResponseError("empty response received")
	}

	comp := &Completion{
		Text:    content,
		Refusal: IsRefusal(content),
	}
	if chatResp.Usage != nil {
		comp.Usage = &api.Usage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:      chatResp.Usage.TotalTokens,
		}
	}
	return comp, nil
}

// retryableStatus reports whether the status signals a transient condition.
// The same schedule applies whether the backend sent the status directly or
// wrapped it in an error payload; only the status code decides.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

// extractErrorMessage tries to parse the response body as a
// ChatErrorResponse and returns the error message if found.
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp ChatErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}

	return ""
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
