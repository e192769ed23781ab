package api

import "testing"

func TestProviderResult_CharCount(t *testing.T) {
	res := ProviderResult{Response: "hello world"}
	if got := res.CharCount(); got != 11 {
		t.Errorf("expected 11, got %d", got)
	}
}

func TestProviderResult_CharCount_ErrorOutcome(t *testing.T) {
	res := ProviderResult{
		Response: "transport: connection refused",
		Err:      NewTransportError("connection refused"),
	}
	if got := res.CharCount(); got != 0 {
		t.Errorf("expected 0 for error outcome, got %d", got)
	}
}

func TestProviderResult_CharsPerToken(t *testing.T) {
	res := ProviderResult{
		Response: "0123456789",
		Usage:    &Usage{TotalTokens: 4},
	}
	eff, ok := res.CharsPerToken()
	if !ok {
		t.Fatal("expected ratio to be defined")
	}
	if eff != 2.5 {
		t.Errorf("expected 2.5, got %f", eff)
	}
}

func TestProviderResult_CharsPerToken_NoUsage(t *testing.T) {
	res := ProviderResult{Response: "text"}
	if _, ok := res.CharsPerToken(); ok {
		t.Error("expected ratio to be undefined without usage")
	}
}

func TestProviderResult_CharsPerToken_ZeroTokens(t *testing.T) {
	res := ProviderResult{
		Response: "text",
		Usage:    &Usage{TotalTokens: 0},
	}
	if _, ok := res.CharsPerToken(); ok {
		t.Error("expected ratio to be undefined for zero total tokens")
	}
}
