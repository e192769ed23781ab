package api

import "testing"

func TestQueryError_Error(t *testing.T) {
	err := NewTransportError("connection refused")
	if got := err.Error(); got != "transport: connection refused" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestQueryError_Kinds(t *testing.T) {
	cases := []struct {
		err  *QueryError
		kind ErrorKind
	}{
		{NewTransportError("x"), ErrorKindTransport},
		{NewMalformedResponseError("x"), ErrorKindMalformedResponse},
		{NewEmptyResponseError("x"), ErrorKindEmptyResponse},
		{NewRetriesExhaustedError("x"), ErrorKindRetriesExhausted},
	}
	for _, c := range cases {
		if c.err.Kind != c.kind {
			t.Errorf("expected kind %q, got %q", c.kind, c.err.Kind)
		}
	}
}
