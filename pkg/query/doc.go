// Package query executes a single chat completion against one provider
// with bounded retry and classifies the terminal outcome.
//
// Rate-limit and unavailable statuses (429, 503) are retried with
// exponential backoff; every other failure is terminal on the first
// occurrence. Responses matching the refusal lexicon are successful
// outcomes carrying the refusal text verbatim.
package query
