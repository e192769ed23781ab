package api

import "time"

// Question is one benchmark question in its source language. Questions are
// immutable: the queue owns them while pending and they are never rewritten,
// only moved between the pending and resolved lists.
type Question string

// ProviderRecord describes one eligible provider for a single pipeline run.
// Records are rebuilt from the provider listing on every question and are
// never persisted.
type ProviderRecord struct {
	// ID is the unique provider identifier (e.g. "meta-llama/llama-3-8b:free").
	ID string

	// Name is the human-readable display name from the listing.
	Name string

	// MaxOutputTokens is the output budget for one completion, derived from
	// the provider's reported context size.
	MaxOutputTokens int
}

// Usage holds token counts reported by a provider. A nil *Usage means the
// provider reported no usage at all.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderResult is the terminal outcome of querying one provider for one
// question. Exactly one result exists per (question, provider) pair and it
// is immutable once the fan-out unit that produced it returns.
type ProviderResult struct {
	ProviderID   string
	ProviderName string

	// Response is the provider's answer in the prompt language. When Err is
	// set, Response carries the error text so the report row still renders.
	Response string

	// BackTranslation is the response translated back to the question's
	// source language. Filled by the validator; "Translation failed" when
	// the translation round trip did not produce text.
	BackTranslation string

	// Refusal marks a response that matched the refusal/uncertainty lexicon.
	// Refusals are successful outcomes, not errors.
	Refusal bool

	// Err is the terminal query error, nil on success.
	Err *QueryError

	// Attempts is the number of requests issued, including retries.
	Attempts int

	Usage *Usage

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// CharCount returns the length in bytes of the provider response, 0 for
// error outcomes.
func (r *ProviderResult) CharCount() int {
	if r.Err != nil {
		return 0
	}
	return len(r.Response)
}

// CharsPerToken returns the characters-per-token efficiency ratio and
// whether it is defined. It is defined only when the provider reported a
// positive total token count.
func (r *ProviderResult) CharsPerToken() (float64, bool) {
	if r.Usage == nil || r.Usage.TotalTokens <= 0 {
		return 0, false
	}
	return float64(r.CharCount()) / float64(r.Usage.TotalTokens), true
}

// Report aggregates all provider results for one question. A report is
// either accepted (both documents persisted, question resolved) or rejected
// (narrative relocated to the failed area, question requeued); it is never
// partially persisted.
type Report struct {
	Question           Question
	TranslatedQuestion string
	Results            []ProviderResult
	CreatedAt          time.Time
}

// FailedQuestion records a question returned to the pending list together
// with the human-readable reason.
type FailedQuestion struct {
	Question Question
	Reason   string
}

// RelocatedReport records a narrative document moved to the failed area and
// why it was rejected.
type RelocatedReport struct {
	Path   string
	Reason string
}

// RunSummary is the value folded out of one batch run. It replaces any
// process-wide accumulator state: each stage returns its contribution and
// the runner merges them here.
type RunSummary struct {
	RunID     string
	StartedAt time.Time

	Resolved  []Question
	Failed    []FailedQuestion
	Relocated []RelocatedReport

	// Excluded is the number of provider identifiers loaded from the
	// exclusion file at startup.
	Excluded int
}
