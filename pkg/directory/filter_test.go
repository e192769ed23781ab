package directory

import (
	"encoding/json"
	"testing"
)

func model(id, name string, ctx, prompt, completion string) Model {
	m := Model{ID: id, Name: name}
	if ctx != "" {
		m.ContextLength = json.RawMessage(ctx)
	}
	if prompt != "" {
		m.Pricing.Prompt = json.RawMessage(prompt)
	}
	if completion != "" {
		m.Pricing.Completion = json.RawMessage(completion)
	}
	return m
}

func TestFilterFree_ZeroCost(t *testing.T) {
	models := []Model{
		model("a/one", "One", "4096", `"0"`, `"0"`),
		model("b/two", "Two", "4096", `"0.002"`, `"0"`),
	}

	eligible := FilterFree(models, nil)

	if _, ok := eligible["a/one"]; !ok {
		t.Error("expected zero-cost provider to be eligible")
	}
	if _, ok := eligible["b/two"]; ok {
		t.Error("expected paid provider to be dropped")
	}
}

func TestFilterFree_FreeSuffix(t *testing.T) {
	// A :free identifier is eligible even without parseable pricing.
	models := []Model{
		model("a/one:free", "One Free", "8192", "", ""),
	}

	eligible := FilterFree(models, nil)
	if _, ok := eligible["a/one:free"]; !ok {
		t.Error("expected :free provider to be eligible")
	}
}

func TestFilterFree_UnparseableCostDropped(t *testing.T) {
	// A present but unparseable cost disqualifies the provider, even with
	// a :free suffix.
	models := []Model{
		model("a/bad:free", "Bad", "4096", `"not-a-number"`, `"0"`),
	}

	eligible := FilterFree(models, nil)
	if len(eligible) != 0 {
		t.Errorf("expected no eligible providers, got %d", len(eligible))
	}
}

func TestFilterFree_ExclusionSet(t *testing.T) {
	models := []Model{
		model("a/one:free", "One", "4096", `"0"`, `"0"`),
		model("b/two:free", "Two", "4096", `"0"`, `"0"`),
	}
	excluded := map[string]struct{}{"a/one:free": {}}

	eligible := FilterFree(models, excluded)

	if _, ok := eligible["a/one:free"]; ok {
		t.Error("excluded provider must never be eligible")
	}
	if _, ok := eligible["b/two:free"]; !ok {
		t.Error("expected non-excluded provider to remain")
	}
}

func TestFilterFree_OutputBudget(t *testing.T) {
	models := []Model{
		model("a/one:free", "One", "8192", `"0"`, `"0"`),
	}

	eligible := FilterFree(models, nil)
	if got := eligible["a/one:free"].MaxOutputTokens; got != 4096 {
		t.Errorf("expected budget 4096, got %d", got)
	}
}

func TestFilterFree_OutputBudgetFallback(t *testing.T) {
	cases := []struct {
		name string
		ctx  string
	}{
		{"missing", ""},
		{"malformed", `"lots"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			models := []Model{model("a/one:free", "One", tc.ctx, `"0"`, `"0"`)}
			eligible := FilterFree(models, nil)
			if got := eligible["a/one:free"].MaxOutputTokens; got != 50 {
				t.Errorf("expected fallback budget 50, got %d", got)
			}
		})
	}
}

func TestFilterFree_NameFallsBackToID(t *testing.T) {
	models := []Model{
		model("a/one:free", "", "4096", `"0"`, `"0"`),
	}

	eligible := FilterFree(models, nil)
	if got := eligible["a/one:free"].Name; got != "a/one:free" {
		t.Errorf("expected name to fall back to id, got %q", got)
	}
}

func TestFilterFree_NumericPricing(t *testing.T) {
	// Pricing as bare JSON numbers instead of quoted strings.
	models := []Model{
		model("a/one", "One", "4096", "0", "0"),
	}

	eligible := FilterFree(models, nil)
	if _, ok := eligible["a/one"]; !ok {
		t.Error("expected numeric zero pricing to be eligible")
	}
}
