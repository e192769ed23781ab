package query

import "github.com/keyday/llmbench/pkg/api"

// Chat Completions request/response types. These mirror the OpenAI Chat
// Completions API format, reduced to the fields the benchmark uses.

// ChatCompletionRequest is the request body for /chat/completions.
type ChatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// ChatMessage represents a message in the Chat Completions format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse is the non-streaming response from /chat/completions.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
}

// ChatChoice represents one completion choice.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatUsage holds token counts reported by the backend.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatErrorResponse is the error body some backends return with non-2xx
// statuses.
type ChatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Completion is a successful provider query outcome.
type Completion struct {
	// Text is the response content, verbatim. For refusals this is the
	// refusal text itself.
	Text string

	// Refusal marks content that matched the refusal/uncertainty lexicon.
	Refusal bool

	// Usage is the reported token usage, nil when the backend sent none.
	Usage *api.Usage
}
