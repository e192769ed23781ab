package report

import (
	"strings"
	"testing"
	"time"

	"github.com/keyday/llmbench/pkg/api"
)

func sampleReport() *api.Report {
	start := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	return &api.Report{
		Question:           "¿Cuál es la capital de Francia?",
		TranslatedQuestion: "What is the capital of France",
		Results: []api.ProviderResult{
			{
				ProviderID:      "alpha/model-a:free",
				ProviderName:    "Model A",
				Response:        "The capital of France is Paris.",
				BackTranslation: "La capital de Francia es París.",
				Attempts:        1,
				Usage:           &api.Usage{PromptTokens: 10, CompletionTokens: 8, TotalTokens: 18},
				StartTime:       start,
				EndTime:         start.Add(1500 * time.Millisecond),
				Duration:        1500 * time.Millisecond,
			},
			{
				ProviderID:      "beta/model-b:free",
				ProviderName:    "Model B",
				Response:        "transport: backend error (HTTP 500)",
				BackTranslation: "transport: backend error (HTTP 500)",
				Err:             api.NewTransportError("backend error (HTTP 500)"),
				Attempts:        1,
			},
			{
				ProviderID:      "gamma/model-c:free",
				ProviderName:    "Model C",
				Response:        "I cannot answer that.",
				BackTranslation: "No puedo responder eso.",
				Refusal:         true,
				Attempts:        1,
			},
		},
		CreatedAt: start,
	}
}

func TestRenderNarrative(t *testing.T) {
	body, err := RenderNarrative(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(body)

	for _, want := range []string{
		"¿Cuál es la capital de Francia?",
		"What is the capital of France",
		"Model A",
		"alpha/model-a:free",
		"The capital of France is Paris.",
		"La capital de Francia es París.",
		// 31 chars / 18 tokens
		"1.72",
		// duration of the first row
		"1.50",
		`<div class="error-message">transport: backend error (HTTP 500)</div>`,
		`<div class="chain-of-thought">I cannot answer that.</div>`,
		"Prompt: 10<br>Completion: 8<br>Total: 18",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("narrative missing %q", want)
		}
	}
}

func TestRenderNarrative_MissingUsage(t *testing.T) {
	rep := &api.Report{
		Question: "q",
		Results: []api.ProviderResult{
			{ProviderID: "alpha/m", ProviderName: "M", Response: "answer", BackTranslation: "respuesta"},
		},
		CreatedAt: time.Now(),
	}
	body, err := RenderNarrative(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "Prompt: N/A") {
		t.Error("missing usage must render as N/A")
	}
	if !strings.Contains(string(body), `<div class="efficiency">N/A</div>`) {
		t.Error("efficiency must be N/A without token counts")
	}
}

func TestRenderNarrative_EscapesMarkup(t *testing.T) {
	rep := &api.Report{
		Question: "q",
		Results: []api.ProviderResult{
			{
				ProviderID:      "alpha/m",
				ProviderName:    "M",
				Response:        "<script>alert(1)</script>\nsecond line",
				BackTranslation: "ok",
			},
		},
		CreatedAt: time.Now(),
	}
	body, err := RenderNarrative(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(body)
	if strings.Contains(html, "<script>") {
		t.Error("response markup must be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;<br>second line") {
		t.Error("line breaks must survive as <br>")
	}
}

func TestDocumentName(t *testing.T) {
	at := time.Date(2025, 3, 14, 10, 30, 5, 0, time.UTC)

	cases := []struct {
		question string
		want     string
	}{
		{"What is love", "What_is_love_2025-03-14_10-30-05"},
		{"¿Qué es? ***", "Qué_es_2025-03-14_10-30-05"},
		{"a very long question that keeps going on", "a_very_long_question_2025-03-14_10-30-05"},
		{"  spaced  ", "spaced_2025-03-14_10-30-05"},
	}

	for _, tc := range cases {
		if got := DocumentName(api.Question(tc.question), at); got != tc.want {
			t.Errorf("DocumentName(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}
