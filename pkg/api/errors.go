package api

import "fmt"

// ErrorKind classifies a terminal query failure.
type ErrorKind string

const (
	// ErrorKindTransport covers network failures and non-retryable HTTP
	// error statuses.
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindMalformedResponse means the body could not be parsed as a
	// chat completion response.
	ErrorKindMalformedResponse ErrorKind = "malformed_response"

	// ErrorKindEmptyResponse means the response parsed but carried no
	// usable content.
	ErrorKindEmptyResponse ErrorKind = "empty_response"

	// ErrorKindRetriesExhausted means every attempt hit a retryable
	// rate-limit or unavailable status.
	ErrorKindRetriesExhausted ErrorKind = "retries_exhausted"
)

// QueryError is the terminal error for one provider query. The kind is
// decided once at the transport boundary and never re-inspected from the
// message text.
type QueryError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewTransportError creates a QueryError for network or HTTP failures.
func NewTransportError(message string) *QueryError {
	return &QueryError{Kind: ErrorKindTransport, Message: message}
}

// NewMalformedResponseError creates a QueryError for unparseable bodies.
func NewMalformedResponseError(message string) *QueryError {
	return &QueryError{Kind: ErrorKindMalformedResponse, Message: message}
}

// NewEmptyResponseError creates a QueryError for responses without content.
func NewEmptyResponseError(message string) *QueryError {
	return &QueryError{Kind: ErrorKindEmptyResponse, Message: message}
}

// NewRetriesExhaustedError creates a QueryError for exhausted retry budgets.
func NewRetriesExhaustedError(message string) *QueryError {
	return &QueryError{Kind: ErrorKindRetriesExhausted, Message: message}
}
