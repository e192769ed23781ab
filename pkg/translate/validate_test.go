package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/keyday/llmbench/pkg/api"
)

// fakeTranslator returns a fixed string or error for every call.
type fakeTranslator struct {
	out     string
	err     error
	calls   int
	lastIn  string
	lastSrc string
	lastDst string
}

func (f *fakeTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	f.calls++
	f.lastIn = text
	f.lastSrc = source
	f.lastDst = target
	return f.out, f.err
}

func TestFillBackTranslation(t *testing.T) {
	tr := &fakeTranslator{out: "La capital es París."}
	res := &api.ProviderResult{
		ProviderID: "test/model",
		Response:   "The capital is Paris.",
	}

	FillBackTranslation(context.Background(), tr, res, "en", "es")

	if res.BackTranslation != "La capital es París." {
		t.Errorf("unexpected back-translation: %q", res.BackTranslation)
	}
	if tr.lastIn != "The capital is Paris." {
		t.Errorf("translator received %q", tr.lastIn)
	}
	if tr.lastSrc != "en" || tr.lastDst != "es" {
		t.Errorf("language pair %s->%s, want en->es", tr.lastSrc, tr.lastDst)
	}
}

func TestFillBackTranslation_ErrorResultSkipsTranslation(t *testing.T) {
	tr := &fakeTranslator{out: "should not be used"}
	res := &api.ProviderResult{
		ProviderID: "test/model",
		Response:   "transport: backend error (HTTP 400)",
		Err:        api.NewTransportError("backend error (HTTP 400)"),
	}

	FillBackTranslation(context.Background(), tr, res, "en", "es")

	if tr.calls != 0 {
		t.Errorf("error outcomes must not be translated, got %d calls", tr.calls)
	}
	if res.BackTranslation != res.Response {
		t.Errorf("error text must be carried verbatim, got %q", res.BackTranslation)
	}
}

func TestFillBackTranslation_RefusalIsTranslated(t *testing.T) {
	tr := &fakeTranslator{out: "No puedo responder eso."}
	res := &api.ProviderResult{
		ProviderID: "test/model",
		Response:   "I cannot answer that.",
		Refusal:    true,
	}

	FillBackTranslation(context.Background(), tr, res, "en", "es")

	if tr.calls != 1 {
		t.Errorf("refusals must be translated, got %d calls", tr.calls)
	}
	if res.BackTranslation != "No puedo responder eso." {
		t.Errorf("unexpected back-translation: %q", res.BackTranslation)
	}
}

func TestFillBackTranslation_FailureSubstitutesSentinel(t *testing.T) {
	cases := []struct {
		name string
		tr   *fakeTranslator
	}{
		{"translator error", &fakeTranslator{err: errors.New("service unavailable")}},
		{"blank output", &fakeTranslator{out: "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := &api.ProviderResult{
				ProviderID: "test/model",
				Response:   "some answer",
			}

			FillBackTranslation(context.Background(), tc.tr, res, "en", "es")

			if res.BackTranslation != FailedSentinel {
				t.Errorf("expected sentinel %q, got %q", FailedSentinel, res.BackTranslation)
			}
		})
	}
}
