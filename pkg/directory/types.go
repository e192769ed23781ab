package directory

import "encoding/json"

// Listing types mirror the OpenRouter-style /models response. Numeric
// fields are kept as raw JSON because backends disagree on whether costs
// and context sizes arrive as numbers or quoted strings.

// ListModelsResponse is the body of GET /models.
type ListModelsResponse struct {
	Data []Model `json:"data"`
}

// Model is one entry in the provider listing.
type Model struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ContextLength json.RawMessage `json:"context_length"`
	Pricing       ModelPricing    `json:"pricing"`
}

// ModelPricing holds per-unit prompt and completion costs.
type ModelPricing struct {
	Prompt     json.RawMessage `json:"prompt"`
	Completion json.RawMessage `json:"completion"`
}
